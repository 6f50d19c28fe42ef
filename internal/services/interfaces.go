package services

import (
	"time"

	"github.com/mrlokans/audiobook-store/internal/entities"
)

// CatalogStore provides read access to the audiobook catalog.
type CatalogStore interface {
	ListAudiobooks() ([]entities.Audiobook, error)
	GetAudiobookByID(id uint) (*entities.Audiobook, error)
	GetAudiobooksByIDs(ids []uint) ([]entities.Audiobook, error)
}

// PurchaseStore persists purchases.
type PurchaseStore interface {
	GetPurchase(userID, audiobookID uint) (*entities.Purchase, error)
	CreatePurchase(userID, audiobookID uint, purchasedAt time.Time) (*entities.Purchase, error)
	ListPurchasesByUser(userID uint) ([]entities.Purchase, error)
}

// ProgressStore persists playback positions.
type ProgressStore interface {
	GetProgress(userID, audiobookID uint) (*entities.PlaybackProgress, error)
	UpsertProgress(userID, audiobookID uint, positionSeconds int, updatedAt time.Time) (*entities.PlaybackProgress, error)
}

// PurchaseResult identifies a newly created purchase.
type PurchaseResult struct {
	PurchaseID  uint `json:"purchase_id"`
	UserID      uint `json:"user_id"`
	AudiobookID uint `json:"audiobook_id"`
}
