package ownership

import (
	"time"

	"arts-market/internal/domain/catalog"
	"arts-market/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reference is the stable handle for an artwork's ownership chain. It is
// created once, inside the artwork-creation transaction, and never mutated,
// so ownership history survives any later change to the artwork row.
type Reference struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ArtworkID string `gorm:"type:uuid;not null;uniqueIndex:idx_references_artwork" json:"art_id"`

	Artwork *catalog.Artwork `gorm:"foreignKey:ArtworkID;constraint:OnDelete:CASCADE;" json:"art,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Reference) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

const (
	StatusCurrentOwner  = "current owner"
	StatusPreviousOwner = "previous owner"
)

// Record is one entry in the append-only ownership ledger. For a given
// reference exactly one record carries StatusCurrentOwner at any time; a
// transfer flips that record to StatusPreviousOwner and appends a new one.
type Record struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	ReferenceID string `gorm:"type:uuid;not null;index" json:"referenceId"`
	UserID      string `gorm:"type:uuid;not null;index" json:"userId"`

	Status          string    `gorm:"not null" json:"ownership_status"`
	TransactionDate time.Time `gorm:"not null" json:"transaction_date"`

	Reference *Reference  `gorm:"foreignKey:ReferenceID;constraint:OnDelete:CASCADE;" json:"reference,omitempty"`
	User      *users.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (r *Record) TableName() string {
	return "art_ownerships"
}

func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
