// Package purchases provides database operations for audiobook purchases.
//
// Uniqueness of (user_id, audiobook_id) is enforced by the
// idx_purchases_user_audiobook unique index; a duplicate insert fails with
// gorm.ErrDuplicatedKey when the connection has TranslateError enabled.
package purchases

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/audiobook-store/internal/entities"
)

// Repository handles all purchase database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new purchases repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetPurchase returns the purchase for a user and audiobook.
// Returns gorm.ErrRecordNotFound when the user has not bought the audiobook.
func (r *Repository) GetPurchase(userID, audiobookID uint) (*entities.Purchase, error) {
	var purchase entities.Purchase
	err := r.db.Where("user_id = ? AND audiobook_id = ?", userID, audiobookID).
		First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// CreatePurchase inserts a purchase stamped with purchasedAt in UTC.
func (r *Repository) CreatePurchase(userID, audiobookID uint, purchasedAt time.Time) (*entities.Purchase, error) {
	purchase := &entities.Purchase{
		UserID:       userID,
		AudiobookID:  audiobookID,
		PurchaseDate: purchasedAt.UTC(),
	}
	if err := r.db.Create(purchase).Error; err != nil {
		return nil, err
	}
	return purchase, nil
}

// ListPurchasesByUser returns a user's purchases ordered by purchase id.
func (r *Repository) ListPurchasesByUser(userID uint) ([]entities.Purchase, error) {
	purchases := []entities.Purchase{}
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&purchases).Error
	return purchases, err
}

// CountPurchases returns how many purchases exist for a user and audiobook.
func (r *Repository) CountPurchases(userID, audiobookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Purchase{}).
		Where("user_id = ? AND audiobook_id = ?", userID, audiobookID).
		Count(&count).Error
	return count, err
}
