package earnings

import (
	"fmt"
	"testing"

	"arts-market/internal/apperr"

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
	require.NoError(t, db.AutoMigrate(&Earning{}))
	return db
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(decimal.Zero))
	assert.NoError(t, ValidateAmount(decimal.NewFromInt(1000)))
	assert.NoError(t, ValidateAmount(decimal.RequireFromString("99.99")))

	err := ValidateAmount(decimal.NewFromInt(-1))
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	err = ValidateAmount(decimal.RequireFromString("10.001"))
	require.Error(t, err)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))
}

func TestRecordRejectsBadAmount(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db)

	_, err := recorder.Record(db, "user-1", "", decimal.NewFromInt(-10))
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&Earning{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestTotalForEmptyIsZero(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db)

	total, err := recorder.TotalFor("nobody")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestTotalForSumsOnlyOwnRows(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewRecorder(db)

	_, err := recorder.Record(db, "alice", "", decimal.RequireFromString("100.50"))
	require.NoError(t, err)
	_, err = recorder.Record(db, "alice", "", decimal.RequireFromString("49.50"))
	require.NoError(t, err)
	_, err = recorder.Record(db, "bob", "", decimal.NewFromInt(999))
	require.NoError(t, err)

	total, err := recorder.TotalFor("alice")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(total))
}
