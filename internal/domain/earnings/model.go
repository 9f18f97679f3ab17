package earnings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Earning is one credit row per completed transfer. Append-only, never mutated.
type Earning struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string `gorm:"type:uuid;not null;index" json:"userId"`
	CollectionID string `gorm:"type:uuid;column:collection_id;index" json:"collection_id"`

	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}

func (e *Earning) TableName() string {
	return "creator_earnings"
}

func (e *Earning) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
