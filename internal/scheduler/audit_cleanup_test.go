package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	mu    sync.Mutex
	calls []int
	err   error
}

func (r *recordingEnqueuer) EnqueueAuditCleanup(retentionDays int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, retentionDays)
	if r.err != nil {
		return "", r.err
	}
	return "task-1", nil
}

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		schedule string
		valid    bool
	}{
		{"0 3 * * *", true},    // Daily at 03:00
		{"*/15 * * * *", true}, // Every 15 minutes
		{"0 0 * * 0", true},    // Weekly on Sunday
		{"invalid", false},
		{"* * * *", false},    // Missing field
		{"60 * * * *", false}, // Invalid minute
		{"0 25 * * *", false}, // Invalid hour
	}

	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNextRunTime(t *testing.T) {
	from := time.Date(2024, 1, 1, 1, 30, 0, 0, time.UTC)

	next, err := NextRunTime("0 3 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC), next)

	_, err = NextRunTime("bogus", from)
	assert.Error(t, err)
}

func TestAuditCleanupScheduler_RunOnce(t *testing.T) {
	enqueuer := &recordingEnqueuer{}
	s := NewAuditCleanupScheduler(enqueuer, "0 3 * * *", 14)

	s.RunOnce()

	assert.Equal(t, []int{14}, enqueuer.calls)
}

func TestAuditCleanupScheduler_RunOnce_EnqueueError(t *testing.T) {
	enqueuer := &recordingEnqueuer{err: errors.New("queue closed")}
	s := NewAuditCleanupScheduler(enqueuer, "0 3 * * *", 14)

	assert.NotPanics(t, s.RunOnce)
	assert.Len(t, enqueuer.calls, 1)
}

func TestAuditCleanupScheduler_StartStop(t *testing.T) {
	s := NewAuditCleanupScheduler(&recordingEnqueuer{}, "0 3 * * *", 30)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	assert.True(t, s.IsRunning())

	// Starting twice is a no-op
	require.NoError(t, s.Start(ctx))

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestAuditCleanupScheduler_StopsWithContext(t *testing.T) {
	s := NewAuditCleanupScheduler(&recordingEnqueuer{}, "0 3 * * *", 30)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestAuditCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewAuditCleanupScheduler(&recordingEnqueuer{}, "not a schedule", 30)

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}
