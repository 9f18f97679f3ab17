package ownership

import (
	"context"
	"fmt"
	"testing"

	"arts-market/internal/apperr"
	"arts-market/internal/domain/catalog"
	"arts-market/internal/domain/earnings"
	"arts-market/internal/domain/users"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&users.User{},
		&users.Role{},
		&catalog.Category{},
		&catalog.Collection{},
		&catalog.Artwork{},
		&Reference{},
		&Record{},
		&earnings.Earning{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *users.User {
	t.Helper()
	user := users.User{
		FirstName:         "Test",
		LastName:          "User",
		Email:             username + "@example.com",
		Username:          username,
		Password:          "hashed",
		RegistrationToken: username + "-token",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createArtworkWithReference(t *testing.T, db *gorm.DB, ledger *Ledger, ownerID string) (*catalog.Artwork, *Reference) {
	t.Helper()

	desc := "A painting"
	price := 1200.0
	art := catalog.Artwork{
		Serial:      fmt.Sprintf("ART-%s", ownerID[:8]),
		Name:        "Test Art",
		Slug:        "test-art-" + ownerID[:8],
		Description: &desc,
		Image:       "http://example.com/a.png",
		Price:       &price,
		Width:       10,
		Height:      10,
		Year:        2020,
		UserID:      ownerID,
	}
	require.NoError(t, db.Create(&art).Error)

	var ref *Reference
	registry := NewRegistry(db)
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		ref, err = registry.CreateReference(tx, art.ID)
		if err != nil {
			return err
		}
		_, err = ledger.Initialize(tx, ref.ID, ownerID)
		return err
	})
	require.NoError(t, err)
	return &art, ref
}

func TestInitializeSetsFirstCurrentOwner(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))
	owner := createUser(t, db, "creator")

	_, ref := createArtworkWithReference(t, db, ledger, owner.ID)

	current, err := ledger.CurrentOwner(ref.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, current.UserID)
	assert.Equal(t, StatusCurrentOwner, current.Status)
}

func TestInitializeTwiceFails(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))
	owner := createUser(t, db, "creator")

	_, ref := createArtworkWithReference(t, db, ledger, owner.ID)

	_, err := ledger.Initialize(db, ref.ID, owner.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestTransferAppendsRecordAndFlipsOld(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")

	art, ref := createArtworkWithReference(t, db, ledger, seller.ID)

	result, err := ledger.Transfer(TransferInput{
		ReferenceID:  ref.ID,
		FromOwnerID:  seller.ID,
		ToOwnerID:    buyer.ID,
		Amount:       decimal.NewFromInt(1500),
		CollectionID: "",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPreviousOwner, result.Previous.Status)
	assert.Equal(t, seller.ID, result.Previous.UserID)
	assert.Equal(t, StatusCurrentOwner, result.Current.Status)
	assert.Equal(t, buyer.ID, result.Current.UserID)

	var count int64
	require.NoError(t, db.Model(&Record{}).Where("reference_id = ?", ref.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// exactly one current owner, and it is the buyer
	current, err := ledger.CurrentOwner(ref.ID)
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, current.UserID)

	var currentCount int64
	require.NoError(t, db.Model(&Record{}).
		Where("reference_id = ? AND status = ?", ref.ID, StatusCurrentOwner).
		Count(&currentCount).Error)
	assert.EqualValues(t, 1, currentCount)

	// the artwork row follows the ledger
	var reloaded catalog.Artwork
	require.NoError(t, db.First(&reloaded, "id = ?", art.ID).Error)
	assert.Equal(t, buyer.ID, reloaded.UserID)
	assert.Nil(t, reloaded.Description)
	assert.Nil(t, reloaded.Price)
}

func TestTransferCreditsSeller(t *testing.T) {
	db := setupTestDB(t)
	recorder := earnings.NewRecorder(db)
	ledger := NewLedger(db, recorder)
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")

	_, ref := createArtworkWithReference(t, db, ledger, seller.ID)

	amount := decimal.NewFromFloat(2500.50)
	result, err := ledger.Transfer(TransferInput{
		ReferenceID: ref.ID,
		FromOwnerID: seller.ID,
		ToOwnerID:   buyer.ID,
		Amount:      amount,
	})
	require.NoError(t, err)
	require.NotNil(t, result.Earning)
	assert.Equal(t, seller.ID, result.Earning.UserID)
	assert.True(t, amount.Equal(result.Earning.Amount))

	total, err := recorder.TotalFor(seller.ID)
	require.NoError(t, err)
	assert.True(t, amount.Equal(total))

	// the buyer paid, the buyer earned nothing
	buyerTotal, err := recorder.TotalFor(buyer.ID)
	require.NoError(t, err)
	assert.True(t, buyerTotal.IsZero())
}

func TestTransferByNonOwnerFails(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")
	stranger := createUser(t, db, "stranger")

	_, ref := createArtworkWithReference(t, db, ledger, seller.ID)

	_, err := ledger.Transfer(TransferInput{
		ReferenceID: ref.ID,
		FromOwnerID: stranger.ID,
		ToOwnerID:   buyer.ID,
		Amount:      decimal.NewFromInt(1000),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// nothing written
	var count int64
	require.NoError(t, db.Model(&Record{}).Where("reference_id = ?", ref.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var earned int64
	require.NoError(t, db.Model(&earnings.Earning{}).Count(&earned).Error)
	assert.EqualValues(t, 0, earned)
}

func TestTransferUnknownReferenceFails(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))
	buyer := createUser(t, db, "buyer")

	_, err := ledger.Transfer(TransferInput{
		ReferenceID: "does-not-exist",
		FromOwnerID: buyer.ID,
		ToOwnerID:   buyer.ID,
		Amount:      decimal.NewFromInt(1000),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestTransferRejectsBadAmount(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))

	_, err := ledger.Transfer(TransferInput{
		ReferenceID: "whatever",
		Amount:      decimal.NewFromInt(-5),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = ledger.Transfer(TransferInput{
		ReferenceID: "whatever",
		Amount:      decimal.RequireFromString("10.999"),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestTransferChainKeepsFullHistory(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))

	owners := []*users.User{
		createUser(t, db, "alice"),
		createUser(t, db, "bob"),
		createUser(t, db, "carol"),
		createUser(t, db, "dave"),
	}

	_, ref := createArtworkWithReference(t, db, ledger, owners[0].ID)

	for i := 1; i < len(owners); i++ {
		_, err := ledger.Transfer(TransferInput{
			ReferenceID: ref.ID,
			FromOwnerID: owners[i-1].ID,
			ToOwnerID:   owners[i].ID,
			Amount:      decimal.NewFromInt(int64(1000 * i)),
		})
		require.NoError(t, err)
	}

	// three transfers leave four records, one per owner
	history, err := ledger.History(ref.ID, 1, 50)
	require.NoError(t, err)
	require.Len(t, history, 4)

	for i, record := range history {
		assert.Equal(t, owners[i].ID, record.UserID)
		if i == len(history)-1 {
			assert.Equal(t, StatusCurrentOwner, record.Status)
		} else {
			assert.Equal(t, StatusPreviousOwner, record.Status)
		}
	}

	current, err := ledger.CurrentOwner(ref.ID)
	require.NoError(t, err)
	assert.Equal(t, owners[len(owners)-1].ID, current.UserID)
}

func TestSellerCannotSellTwice(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")
	second := createUser(t, db, "second")

	_, ref := createArtworkWithReference(t, db, ledger, seller.ID)

	_, err := ledger.Transfer(TransferInput{
		ReferenceID: ref.ID,
		FromOwnerID: seller.ID,
		ToOwnerID:   buyer.ID,
		Amount:      decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	// the seller no longer holds the art
	_, err = ledger.Transfer(TransferInput{
		ReferenceID: ref.ID,
		FromOwnerID: seller.ID,
		ToOwnerID:   second.ID,
		Amount:      decimal.NewFromInt(1000),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
}

func TestTransferConflictWhenCurrentOwnerFlipsUnderneath(t *testing.T) {
	db := setupTestDB(t)
	recorder := earnings.NewRecorder(db)
	ledger := NewLedger(db, recorder)
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")

	_, ref := createArtworkWithReference(t, db, ledger, seller.ID)

	current, err := ledger.CurrentOwner(ref.ID)
	require.NoError(t, err)

	// Flip the current-owner row right before the guarded update runs,
	// on the transfer's own connection, the way a racing transfer that
	// committed first would leave it.
	flipped := false
	err = db.Callback().Update().Before("gorm:update").Register("flip_current_owner", func(op *gorm.DB) {
		if flipped || op.Statement.Table != "art_ownerships" {
			return
		}
		flipped = true
		_, execErr := op.Statement.ConnPool.ExecContext(context.Background(),
			"UPDATE art_ownerships SET status = ? WHERE id = ?", StatusPreviousOwner, current.ID)
		require.NoError(t, execErr)
	})
	require.NoError(t, err)

	_, err = ledger.Transfer(TransferInput{
		ReferenceID: ref.ID,
		FromOwnerID: seller.ID,
		ToOwnerID:   buyer.ID,
		Amount:      decimal.NewFromInt(1000),
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	assert.True(t, flipped)

	// the losing transfer rolled back completely: still exactly one
	// record, still current, still the seller's
	var records []Record
	require.NoError(t, db.Where("reference_id = ?", ref.ID).Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, StatusCurrentOwner, records[0].Status)
	assert.Equal(t, seller.ID, records[0].UserID)

	var earned int64
	require.NoError(t, db.Model(&earnings.Earning{}).Count(&earned).Error)
	assert.EqualValues(t, 0, earned)

	total, err := recorder.TotalFor(seller.ID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestTransferPlacesArtworkForNewOwner(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")

	category := catalog.Category{Name: "Abstract", Slug: "abstract"}
	require.NoError(t, db.Create(&category).Error)
	collection := catalog.Collection{Name: "Favorites", Slug: "favorites", UserID: buyer.ID}
	require.NoError(t, db.Create(&collection).Error)

	art, ref := createArtworkWithReference(t, db, ledger, seller.ID)

	_, err := ledger.Transfer(TransferInput{
		ReferenceID:     ref.ID,
		FromOwnerID:     seller.ID,
		ToOwnerID:       buyer.ID,
		Amount:          decimal.NewFromInt(2000),
		NewCollectionID: &collection.ID,
		NewCategoryID:   &category.ID,
	})
	require.NoError(t, err)

	var reloaded catalog.Artwork
	require.NoError(t, db.First(&reloaded, "id = ?", art.ID).Error)
	require.NotNil(t, reloaded.CollectionID)
	assert.Equal(t, collection.ID, *reloaded.CollectionID)
	require.NotNil(t, reloaded.CategoryID)
	assert.Equal(t, category.ID, *reloaded.CategoryID)
}
