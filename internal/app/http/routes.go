package routes

import (
	artapi "arts-market/internal/api/art"
	authapi "arts-market/internal/api/auth"
	collectionsapi "arts-market/internal/api/collections"
	ownershipapi "arts-market/internal/api/ownershipapi"
	taxonomyapi "arts-market/internal/api/taxonomy"
	usersapi "arts-market/internal/api/users"
	"arts-market/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every API handler the router wires up.
type Handlers struct {
	Auth        *authapi.Handler
	Users       *usersapi.Handler
	Art         *artapi.Handler
	Ownership   *ownershipapi.Handler
	Collections *collectionsapi.Handler
	Taxonomy    *taxonomyapi.Handler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/register", h.Auth.Register)
	public.POST("/login", h.Auth.Login)
	public.POST("/refresh-token", h.Auth.Refresh)

	public.GET("/arts", h.Art.Feed)
	public.GET("/arts/hero", h.Art.Hero)
	public.GET("/arts/:id", h.Art.GetByID)

	public.GET("/users/:id", h.Users.GetByID)
	public.GET("/users/:id/arts", h.Art.OfVisitedUser)
	public.GET("/users/:id/collections", h.Collections.ByVisitedUser)

	public.GET("/collections", h.Collections.List)
	public.GET("/collections/:id", h.Collections.GetByID)

	public.GET("/categories", h.Taxonomy.ListCategories)
	public.GET("/categories/:id", h.Taxonomy.GetCategory)
	public.GET("/categories/:id/arts", h.Taxonomy.ArtsInCategory)
	public.GET("/mediums", h.Taxonomy.ListMediums)
	public.GET("/mediums/:id", h.Taxonomy.GetMedium)
	public.GET("/mediums/:id/arts", h.Taxonomy.ArtsByMedium)
	public.GET("/tags", h.Taxonomy.ListTags)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())

	auth.GET("/me", h.Users.Me)
	auth.PATCH("/me", h.Users.Update)
	auth.PATCH("/me/image", h.Users.ReplaceImage)
	auth.PATCH("/me/cover-image", h.Users.ReplaceCoverImage)
	auth.GET("/me/social-links", h.Users.SocialLinks)
	auth.PATCH("/me/social-links", h.Users.UpdateSocialLinks)
	auth.POST("/change-password", h.Auth.ChangePassword)

	auth.GET("/me/arts", h.Art.OfCurrentUser)
	auth.GET("/me/liked-arts", h.Art.LikedByCurrentUser)
	auth.GET("/me/collections", h.Collections.ByCurrentUser)

	auth.POST("/arts", h.Art.Create)
	auth.GET("/form-data", h.Art.FormData)
	auth.PATCH("/arts/:id", h.Art.Update)
	auth.DELETE("/arts/:id", h.Art.Delete)
	auth.POST("/arts/likes", h.Art.ToggleLike)
	auth.GET("/arts/:id/owner", h.Ownership.CurrentOwner)

	auth.POST("/collections", h.Collections.Create)
	auth.PATCH("/collections/:id", h.Collections.UpdateName)
	auth.PATCH("/collections/:id/image", h.Collections.ReplaceImage)
	auth.PATCH("/collections/:id/cover-image", h.Collections.ReplaceCoverImage)
	auth.DELETE("/collections/:id", h.Collections.Delete)

	auth.GET("/ownership", h.Ownership.List)
	auth.GET("/ownership/:id", h.Ownership.History)
	auth.POST("/ownership/change", h.Ownership.ChangeOwnership)

	// Admin routes
	admin := r.Group("/")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/users", h.Users.List)
	admin.GET("/users/active-split", h.Users.ActiveSplit)
	admin.PATCH("/users/:id/deactivate", h.Users.Deactivate)
	admin.PATCH("/users/:id/activate", h.Users.Activate)
	admin.POST("/categories", h.Taxonomy.CreateCategory)
	admin.DELETE("/categories/:id", h.Taxonomy.DeleteCategory)
	admin.POST("/mediums", h.Taxonomy.CreateMedium)
	admin.DELETE("/mediums/:id", h.Taxonomy.DeleteMedium)
	admin.POST("/tags", h.Taxonomy.CreateTag)
	admin.DELETE("/tags/:id", h.Taxonomy.DeleteTag)
}
