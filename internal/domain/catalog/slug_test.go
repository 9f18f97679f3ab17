package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSlugDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Category{}))
	return db
}

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Modern Art", "modern-art"},
		{"  Modern   Art  ", "modern-art"},
		{"Art & Craft!", "art-craft"},
		{"UPPER case", "upper-case"},
		{"---", "untitled"},
		{"", "untitled"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MakeSlug(tt.name), "input %q", tt.name)
	}
}

func TestUniqueSlugCounters(t *testing.T) {
	db := setupSlugDB(t)

	first, seq, err := UniqueSlug(db, &Category{}, "Modern Art")
	require.NoError(t, err)
	assert.Equal(t, "modern-art", first)
	assert.Equal(t, 1, seq)
	require.NoError(t, db.Create(&Category{Name: "Modern Art", Slug: first}).Error)

	second, seq, err := UniqueSlug(db, &Category{}, "Modern Art")
	require.NoError(t, err)
	assert.Equal(t, "modern-art-2", second)
	assert.Equal(t, 2, seq)
	require.NoError(t, db.Create(&Category{Name: "Modern Art", Slug: second}).Error)

	third, seq, err := UniqueSlug(db, &Category{}, "Modern Art")
	require.NoError(t, err)
	assert.Equal(t, "modern-art-3", third)
	assert.Equal(t, 3, seq)
}
