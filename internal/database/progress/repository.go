// Package progress provides database operations for playback progress.
//
// Writes go through a single INSERT ... ON CONFLICT DO UPDATE statement keyed
// on (user_id, audiobook_id), so concurrent writers for the same pair always
// end up with one row holding the last written position.
package progress

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/audiobook-store/internal/entities"
)

// Repository handles all playback progress database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetProgress returns the stored progress for a user and audiobook.
// Returns gorm.ErrRecordNotFound when nothing has been recorded yet.
func (r *Repository) GetProgress(userID, audiobookID uint) (*entities.PlaybackProgress, error) {
	return getProgress(r.db, userID, audiobookID)
}

// UpsertProgress creates or overwrites the progress row for the pair and
// returns the stored row.
func (r *Repository) UpsertProgress(userID, audiobookID uint, positionSeconds int, updatedAt time.Time) (*entities.PlaybackProgress, error) {
	var stored *entities.PlaybackProgress

	err := r.db.Transaction(func(tx *gorm.DB) error {
		row := &entities.PlaybackProgress{
			UserID:          userID,
			AudiobookID:     audiobookID,
			PositionSeconds: positionSeconds,
			LastUpdate:      updatedAt.UTC(),
		}

		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "audiobook_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position_seconds", "last_update"}),
		}).Create(row).Error
		if err != nil {
			return err
		}

		// The returned id is unreliable on the update path, re-read the row.
		stored, err = getProgress(tx, userID, audiobookID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// CountProgress returns how many progress rows exist for a user and audiobook.
func (r *Repository) CountProgress(userID, audiobookID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.PlaybackProgress{}).
		Where("user_id = ? AND audiobook_id = ?", userID, audiobookID).
		Count(&count).Error
	return count, err
}

func getProgress(db *gorm.DB, userID, audiobookID uint) (*entities.PlaybackProgress, error) {
	var progress entities.PlaybackProgress
	err := db.Where("user_id = ? AND audiobook_id = ?", userID, audiobookID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}
