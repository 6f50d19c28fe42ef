package tasks

import (
	"path/filepath"
	"strings"
	"time"
)

// Config holds configuration for the background task queue.
type Config struct {
	// DatabasePath is the sqlite file backing the queue.
	DatabasePath string

	// Workers is the number of concurrent task workers. Default: 2
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often backlite purges finished tasks. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:         2,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: 1 * time.Hour,
	}
}

// DerivePath places the queue database next to a sqlite store, adding a
// "-tasks" suffix: ./store.db becomes ./store-tasks.db. PostgreSQL URLs have
// no directory to share, so fallback is used instead.
func DerivePath(mainDBPath, fallback string) string {
	if mainDBPath == "" || strings.Contains(mainDBPath, "://") {
		return fallback
	}
	dir := filepath.Dir(mainDBPath)
	base := filepath.Base(mainDBPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	return filepath.Join(dir, name+"-tasks"+ext)
}
