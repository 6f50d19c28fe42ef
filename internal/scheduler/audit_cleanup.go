package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// CleanupEnqueuer queues an audit cleanup run.
type CleanupEnqueuer interface {
	EnqueueAuditCleanup(retentionDays int) (string, error)
}

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule validates a five-field cron schedule string.
func ValidateCronSchedule(schedule string) error {
	_, err := scheduleParser.Parse(schedule)
	return err
}

// NextRunTime returns when the schedule fires next after from.
func NextRunTime(schedule string, from time.Time) (time.Time, error) {
	sched, err := scheduleParser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return sched.Next(from), nil
}

// AuditCleanupScheduler periodically enqueues audit cleanup tasks.
type AuditCleanupScheduler struct {
	enqueuer      CleanupEnqueuer
	schedule      string
	retentionDays int

	cron       *cron.Cron
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler creates a scheduler; call Start to activate it.
func NewAuditCleanupScheduler(enqueuer CleanupEnqueuer, schedule string, retentionDays int) *AuditCleanupScheduler {
	return &AuditCleanupScheduler{
		enqueuer:      enqueuer,
		schedule:      schedule,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start registers the cleanup job and starts the cron loop. The scheduler
// stops on its own when ctx is cancelled.
func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	if _, err := s.cron.AddFunc(s.schedule, s.RunOnce); err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.schedule, time.Now())
	log.Printf("Audit cleanup scheduler: started with schedule '%s', retention %d days. Next run: %v",
		s.schedule, s.retentionDays, nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// RunOnce enqueues a single cleanup task.
func (s *AuditCleanupScheduler) RunOnce() {
	id, err := s.enqueuer.EnqueueAuditCleanup(s.retentionDays)
	if err != nil {
		log.Printf("Audit cleanup scheduler: %v", err)
		return
	}
	log.Printf("Audit cleanup scheduler: queued task %s", id)
}

// Stop waits for a running job to finish and halts the cron loop.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}
	s.isRunning = false

	log.Printf("Audit cleanup scheduler: stopped")
}

// IsRunning reports whether the cron loop is active.
func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
