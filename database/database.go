package database

import (
	"fmt"

	"arts-market/internal/domain/catalog"
	"arts-market/internal/domain/earnings"
	"arts-market/internal/domain/ownership"
	"arts-market/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the store handle. The handle is owned by the composition root
// and passed into every consumer; nothing in this package keeps global state.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate auto-migrates all domain models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// users
		&users.User{},
		&users.Role{},
		&users.SocialLink{},

		// catalog
		&catalog.Category{},
		&catalog.Medium{},
		&catalog.Tag{},
		&catalog.Collection{},
		&catalog.Artwork{},
		&catalog.Like{},

		// ownership ledger
		&ownership.Reference{},
		&ownership.Record{},

		// earnings
		&earnings.Earning{},
	)
}

// Close releases the underlying connection pool at shutdown.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
