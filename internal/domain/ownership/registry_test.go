package ownership

import (
	"testing"

	"arts-market/internal/apperr"
	"arts-market/internal/domain/earnings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReferenceTwiceFails(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))
	owner := createUser(t, db, "creator")

	art, _ := createArtworkWithReference(t, db, ledger, owner.ID)

	registry := NewRegistry(db)
	_, err := registry.CreateReference(db, art.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestResolveUnknownArtwork(t *testing.T) {
	db := setupTestDB(t)
	registry := NewRegistry(db)

	_, err := registry.Resolve("no-such-art")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestResolveFindsReference(t *testing.T) {
	db := setupTestDB(t)
	ledger := NewLedger(db, earnings.NewRecorder(db))
	owner := createUser(t, db, "creator")

	art, ref := createArtworkWithReference(t, db, ledger, owner.ID)

	registry := NewRegistry(db)
	got, err := registry.Resolve(art.ID)
	require.NoError(t, err)
	assert.Equal(t, ref.ID, got.ID)
	assert.Equal(t, art.ID, got.ArtworkID)
}
