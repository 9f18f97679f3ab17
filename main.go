package main

import (
	"log"
	"time"

	"arts-market/config"
	"arts-market/database"
	artapi "arts-market/internal/api/art"
	authapi "arts-market/internal/api/auth"
	collectionsapi "arts-market/internal/api/collections"
	ownershipapi "arts-market/internal/api/ownershipapi"
	taxonomyapi "arts-market/internal/api/taxonomy"
	usersapi "arts-market/internal/api/users"
	routes "arts-market/internal/app/http"
	"arts-market/internal/domain/earnings"
	"arts-market/internal/domain/ownership"
	"arts-market/internal/infra/moderation"
	"arts-market/internal/infra/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	db, err := database.Connect(config.DB_URL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	uploader, err := storage.New()
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	screener := moderation.Permissive{}

	recorder := earnings.NewRecorder(db)
	registry := ownership.NewRegistry(db)
	ledger := ownership.NewLedger(db, recorder)

	handlers := routes.Handlers{
		Auth:        authapi.New(db),
		Users:       usersapi.New(db, recorder, uploader),
		Art:         artapi.New(db, registry, ledger, uploader, screener),
		Ownership:   ownershipapi.New(db, registry, ledger),
		Collections: collectionsapi.New(db, uploader),
		Taxonomy:    taxonomyapi.New(db),
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if config.STORAGE_TYPE == "local" {
		r.Static("/uploads", config.STORAGE_LOCAL_PATH)
	}

	routes.RegisterRoutes(r, handlers)

	r.Run(":" + config.PORT)
}
