package services

import (
	"errors"
	"fmt"
)

// ErrInvalidInput indicates a request that fails validation before touching storage.
var ErrInvalidInput = errors.New("invalid input")

// ErrAlreadyPurchased indicates the user already owns the audiobook.
var ErrAlreadyPurchased = errors.New("audiobook already purchased")

// ErrAudiobookNotFound indicates the referenced audiobook does not exist.
var ErrAudiobookNotFound = errors.New("audiobook not found")

// ErrProgressNotFound indicates no playback position was recorded for the pair.
var ErrProgressNotFound = errors.New("no playback progress found")

// ErrStorageUnavailable wraps any failure of the underlying database.
var ErrStorageUnavailable = errors.New("storage unavailable")

// invalidInput builds an ErrInvalidInput carrying a field-specific message.
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// storageError wraps err so that errors.Is(err, ErrStorageUnavailable) holds
// while the driver error stays reachable for logging.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
