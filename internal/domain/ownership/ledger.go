package ownership

import (
	"errors"
	"time"

	"arts-market/internal/apperr"
	"arts-market/internal/domain/catalog"
	"arts-market/internal/domain/earnings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/*
	Ownership ledger
	----------------
	The only writer of "who owns what". Per reference the ledger holds an
	append-only chain of records of which exactly one is "current owner".
	A transfer never repurposes an old record: it flips the current one to
	"previous owner" and appends a new current one.
*/

type Ledger struct {
	db       *gorm.DB
	recorder *earnings.Recorder
}

func NewLedger(db *gorm.DB, recorder *earnings.Recorder) *Ledger {
	return &Ledger{db: db, recorder: recorder}
}

// Initialize inserts the first "current owner" record for a reference. Runs on
// the caller's transaction (artwork creation). Fails when the reference
// already has ownership history.
func (l *Ledger) Initialize(tx *gorm.DB, referenceID, ownerID string) (*Record, error) {
	var count int64
	if err := tx.Model(&Record{}).Where("reference_id = ?", referenceID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.New(apperr.Conflict, "Ownership already initialized for this reference")
	}

	record := Record{
		ReferenceID:     referenceID,
		UserID:          ownerID,
		Status:          StatusCurrentOwner,
		TransactionDate: time.Now(),
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// TransferInput carries everything one ownership transfer needs.
type TransferInput struct {
	ReferenceID string
	FromOwnerID string
	ToOwnerID   string

	// Sale context: the seller's collection credited with the earning,
	// and the catalog placement for the new owner.
	Amount          decimal.Decimal
	CollectionID    string
	NewCollectionID *string
	NewCategoryID   *string
}

type TransferResult struct {
	Previous *Record           `json:"updateOwnership"`
	Current  *Record           `json:"createNewOwnership"`
	Earning  *earnings.Earning `json:"earning"`
}

// Transfer moves ownership of a reference from one user to another. The four
// writes (status flip, new record, artwork reset, earning row) commit or roll
// back together. The flip is a guarded update on the single current-owner row:
// two racing transfers against the same state cannot both see RowsAffected == 1,
// so the loser fails with a conflict instead of producing a second current owner.
func (l *Ledger) Transfer(input TransferInput) (*TransferResult, error) {
	if err := earnings.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var result TransferResult
	err := l.db.Transaction(func(tx *gorm.DB) error {
		current, err := currentOwnerTx(tx, input.ReferenceID)
		if err != nil {
			return err
		}
		if current.UserID != input.FromOwnerID {
			return apperr.New(apperr.Forbidden, "Art does not belong to you")
		}

		var ref Reference
		if err := tx.First(&ref, "id = ?", input.ReferenceID).Error; err != nil {
			return err
		}

		now := time.Now()

		flip := tx.Model(&Record{}).
			Where("id = ? AND status = ?", current.ID, StatusCurrentOwner).
			Updates(map[string]interface{}{
				"status":           StatusPreviousOwner,
				"transaction_date": now,
			})
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return apperr.New(apperr.Conflict, "Ownership changed concurrently, retry the transfer")
		}
		current.Status = StatusPreviousOwner
		current.TransactionDate = now

		record := Record{
			ReferenceID:     input.ReferenceID,
			UserID:          input.ToOwnerID,
			Status:          StatusCurrentOwner,
			TransactionDate: now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		// A new owner starts with a blank catalog entry: description and
		// price cleared, collection and category per the transfer input.
		if err := tx.Model(&catalog.Artwork{}).
			Where("id = ?", ref.ArtworkID).
			Updates(map[string]interface{}{
				"user_id":       input.ToOwnerID,
				"description":   nil,
				"price":         nil,
				"collection_id": input.NewCollectionID,
				"category_id":   input.NewCategoryID,
			}).Error; err != nil {
			return err
		}

		earning, err := l.recorder.Record(tx, input.FromOwnerID, input.CollectionID, input.Amount)
		if err != nil {
			return err
		}

		result = TransferResult{Previous: current, Current: &record, Earning: earning}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CurrentOwner returns the single current-owner record of a reference.
func (l *Ledger) CurrentOwner(referenceID string) (*Record, error) {
	return currentOwnerTx(l.db, referenceID)
}

// History returns all ownership records of a reference, oldest first.
func (l *Ledger) History(referenceID string, page, pageSize int) ([]Record, error) {
	var records []Record
	// status DESC breaks the timestamp tie a transfer leaves between the
	// record it flipped and the record it appended.
	err := l.db.Where("reference_id = ?", referenceID).
		Order("transaction_date ASC, status DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Preload("User").
		Find(&records).Error
	return records, err
}

func currentOwnerTx(tx *gorm.DB, referenceID string) (*Record, error) {
	var record Record
	err := tx.First(&record, "reference_id = ? AND status = ?", referenceID, StatusCurrentOwner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "No established ownership for this art")
		}
		return nil, err
	}
	return &record, nil
}
