package catalog

import (
	"time"

	"arts-market/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Artwork is the catalog entry for a single work. UserID mirrors the current
// owner held by the ownership ledger; it is a read-optimization column and is
// only ever written alongside the ledger, inside the same transaction.
type Artwork struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Serial string `gorm:"not null" json:"serial"`
	Name   string `gorm:"not null" json:"name"`
	Slug   string `gorm:"not null;uniqueIndex:idx_artworks_slug" json:"slug"`

	Description *string `gorm:"type:text" json:"description"`
	Image       string  `json:"image"`

	CategoryID   *string `gorm:"type:uuid;column:category_id;index" json:"category_id"`
	CollectionID *string `gorm:"type:uuid;column:collection_id;index" json:"collection_id"`

	// Nullable until the owner completes the catalog entry.
	Price *float64 `gorm:"type:decimal(12,2)" json:"price"`

	Width  int `json:"width"`
	Height int `json:"height"`
	Year   int `json:"year"`

	IsExplicit bool `gorm:"not null;default:false" json:"isExplicit"`
	Status     bool `gorm:"not null;default:false" json:"status"`

	UserID string      `gorm:"type:uuid;not null;index" json:"userId"`
	User   *users.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	Category   *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Collection *Collection `gorm:"foreignKey:CollectionID" json:"collection,omitempty"`

	Mediums []Medium `gorm:"many2many:artwork_mediums;" json:"mediums,omitempty"`
	Tags    []Tag    `gorm:"many2many:artwork_tags;" json:"tags,omitempty"`
	Likes   []Like   `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE;" json:"likes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Artwork) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Catalogued reports whether the owner completed the catalog entry.
// Feeds only surface catalogued art.
func (a *Artwork) Catalogued() bool {
	return a.Price != nil && a.CollectionID != nil
}

type Like struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_artwork,priority:1" json:"userId"`
	ArtworkID string `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_artwork,priority:2" json:"artId"`

	CreatedAt time.Time `json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
