package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/audiobook-store/internal/entities"
)

// StoreService implements the storefront operations: browsing the catalog,
// buying audiobooks, listing a user's library and tracking playback progress.
type StoreService struct {
	catalog   CatalogStore
	purchases PurchaseStore
	progress  ProgressStore
	now       func() time.Time
}

// NewStoreService creates a StoreService backed by the given stores.
func NewStoreService(catalog CatalogStore, purchases PurchaseStore, progress ProgressStore) *StoreService {
	return &StoreService{
		catalog:   catalog,
		purchases: purchases,
		progress:  progress,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the time source used for purchase and progress timestamps.
func (s *StoreService) SetClock(now func() time.Time) {
	s.now = now
}

// ListAudiobooks returns the whole catalog.
func (s *StoreService) ListAudiobooks() ([]entities.Audiobook, error) {
	books, err := s.catalog.ListAudiobooks()
	if err != nil {
		return nil, storageError("list audiobooks", err)
	}
	if books == nil {
		books = []entities.Audiobook{}
	}
	return books, nil
}

// Purchase records that userID bought audiobookID.
//
// The existence check gives the common duplicate case a clean answer; the
// unique index on (user_id, audiobook_id) covers concurrent requests that
// both pass the check.
func (s *StoreService) Purchase(userID, audiobookID uint) (*PurchaseResult, error) {
	if userID == 0 {
		return nil, invalidInput("user_id is required")
	}
	if audiobookID == 0 {
		return nil, invalidInput("audiobook_id is required")
	}

	if err := s.requireAudiobook(audiobookID); err != nil {
		return nil, err
	}

	_, err := s.purchases.GetPurchase(userID, audiobookID)
	switch {
	case err == nil:
		return nil, ErrAlreadyPurchased
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storageError("check purchase", err)
	}

	purchase, err := s.purchases.CreatePurchase(userID, audiobookID, s.now())
	if err != nil {
		if s.isDuplicatePurchase(userID, audiobookID, err) {
			return nil, ErrAlreadyPurchased
		}
		return nil, storageError("create purchase", err)
	}

	return &PurchaseResult{
		PurchaseID:  purchase.ID,
		UserID:      purchase.UserID,
		AudiobookID: purchase.AudiobookID,
	}, nil
}

// ListLibrary returns the audiobooks userID has purchased, in purchase order.
// Purchases whose audiobook no longer exists are skipped. An unknown user has
// an empty library.
func (s *StoreService) ListLibrary(userID uint) ([]entities.Audiobook, error) {
	purchases, err := s.purchases.ListPurchasesByUser(userID)
	if err != nil {
		return nil, storageError("list purchases", err)
	}

	library := make([]entities.Audiobook, 0, len(purchases))
	if len(purchases) == 0 {
		return library, nil
	}

	ids := make([]uint, 0, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.AudiobookID)
	}

	books, err := s.catalog.GetAudiobooksByIDs(ids)
	if err != nil {
		return nil, storageError("resolve library audiobooks", err)
	}

	byID := make(map[uint]entities.Audiobook, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	for _, p := range purchases {
		if book, ok := byID[p.AudiobookID]; ok {
			library = append(library, book)
		}
	}
	return library, nil
}

// GetProgress returns the recorded playback position for the pair.
func (s *StoreService) GetProgress(userID, audiobookID uint) (*entities.PlaybackProgress, error) {
	progress, err := s.progress.GetProgress(userID, audiobookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, storageError("get progress", err)
	}
	return progress, nil
}

// SetProgress stores positionSeconds for the pair, creating the row on first
// write and overwriting it afterwards.
func (s *StoreService) SetProgress(userID, audiobookID uint, positionSeconds int) (*entities.PlaybackProgress, error) {
	if userID == 0 {
		return nil, invalidInput("user_id is required")
	}
	if positionSeconds < 0 {
		return nil, invalidInput("position_seconds must be greater than or equal to 0")
	}

	if err := s.requireAudiobook(audiobookID); err != nil {
		return nil, err
	}

	progress, err := s.progress.UpsertProgress(userID, audiobookID, positionSeconds, s.now())
	if err != nil {
		return nil, storageError("upsert progress", err)
	}
	return progress, nil
}

func (s *StoreService) requireAudiobook(id uint) error {
	if _, err := s.catalog.GetAudiobookByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAudiobookNotFound
		}
		return storageError("get audiobook", err)
	}
	return nil
}

// isDuplicatePurchase reports whether a failed insert lost a race against
// another purchase of the same pair. Drivers that do not translate unique
// violations are handled by looking the row up again.
func (s *StoreService) isDuplicatePurchase(userID, audiobookID uint, err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	_, lookupErr := s.purchases.GetPurchase(userID, audiobookID)
	return lookupErr == nil
}
