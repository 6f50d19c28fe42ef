// Package catalog provides database operations for the audiobook catalog.
//
// This package implements the CatalogStore interface defined in internal/services.
//
// # Usage
//
//	repo := catalog.NewRepository(db)
//	books, err := repo.ListAudiobooks()
package catalog

import (
	"gorm.io/gorm"

	"github.com/mrlokans/audiobook-store/internal/entities"
)

// Repository handles all audiobook catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAudiobooks returns every audiobook in the catalog in storage order.
func (r *Repository) ListAudiobooks() ([]entities.Audiobook, error) {
	books := []entities.Audiobook{}
	err := r.db.Order("id ASC").Find(&books).Error
	return books, err
}

// GetAudiobookByID retrieves a single audiobook.
// Returns gorm.ErrRecordNotFound when the id does not exist.
func (r *Repository) GetAudiobookByID(id uint) (*entities.Audiobook, error) {
	var book entities.Audiobook
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAudiobooksByIDs fetches the audiobooks for the given ids in one query.
// Ids without a matching row are absent from the result.
func (r *Repository) GetAudiobooksByIDs(ids []uint) ([]entities.Audiobook, error) {
	books := []entities.Audiobook{}
	if len(ids) == 0 {
		return books, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&books).Error
	return books, err
}

// CreateAudiobook inserts a new catalog entry.
func (r *Repository) CreateAudiobook(book *entities.Audiobook) error {
	return r.db.Create(book).Error
}
