package ownership

import (
	"errors"

	"arts-market/internal/apperr"

	"gorm.io/gorm"
)

// Registry maps artworks to their stable references.
type Registry struct {
	db *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// CreateReference inserts the reference for a freshly created artwork. It runs
// on the caller's transaction so a failed artwork creation leaves no orphan
// reference behind.
func (r *Registry) CreateReference(tx *gorm.DB, artworkID string) (*Reference, error) {
	var count int64
	if err := tx.Model(&Reference{}).Where("artwork_id = ?", artworkID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.New(apperr.Conflict, "Artwork already has a reference")
	}

	ref := Reference{ArtworkID: artworkID}
	if err := tx.Create(&ref).Error; err != nil {
		return nil, err
	}
	return &ref, nil
}

// Resolve returns the reference for an artwork.
func (r *Registry) Resolve(artworkID string) (*Reference, error) {
	var ref Reference
	err := r.db.First(&ref, "artwork_id = ?", artworkID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Art was not found")
		}
		return nil, err
	}
	return &ref, nil
}
