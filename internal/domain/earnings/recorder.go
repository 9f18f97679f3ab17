package earnings

import (
	"arts-market/internal/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recorder appends earning rows and answers per-user totals.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// ValidateAmount rejects malformed amounts before any write: negative values
// and more than 2 fraction digits.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return apperr.New(apperr.Validation, "Amount must not be negative")
	}
	if amount.Exponent() < -2 {
		return apperr.New(apperr.Validation, "Amount must have at most 2 decimal places")
	}
	return nil
}

// Record appends one earning row on the caller's transaction.
func (r *Recorder) Record(tx *gorm.DB, userID, collectionID string, amount decimal.Decimal) (*Earning, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	earning := Earning{
		UserID:       userID,
		CollectionID: collectionID,
		Amount:       amount,
	}
	if err := tx.Create(&earning).Error; err != nil {
		return nil, err
	}
	return &earning, nil
}

// TotalFor sums all earnings of a user, zero for the empty set.
func (r *Recorder) TotalFor(userID string) (decimal.Decimal, error) {
	var rows []Earning
	if err := r.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total, nil
}

// ListFor returns a user's earning rows, newest first.
func (r *Recorder) ListFor(userID string, page, pageSize int) ([]Earning, error) {
	var rows []Earning
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rows).Error
	return rows, err
}
