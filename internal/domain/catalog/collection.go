package catalog

import (
	"time"

	"arts-market/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Collection struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"not null;uniqueIndex:idx_collections_slug" json:"slug"`

	Description string `gorm:"type:text" json:"description"`
	Image       string `json:"image"`
	CoverPhoto  string `gorm:"column:cover_photo" json:"cover_photo"`

	UserID string      `gorm:"type:uuid;not null;index" json:"userId"`
	User   *users.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`

	CategoryID string    `gorm:"type:uuid;column:category_id;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Tags     []Tag     `gorm:"many2many:collection_tags;" json:"tags,omitempty"`
	Artworks []Artwork `gorm:"foreignKey:CollectionID" json:"artworks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
