package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/audiobook-store/internal/database/audit"
	"github.com/mrlokans/audiobook-store/internal/entities"
)

// RequestMeta describes the HTTP request that triggered an event.
type RequestMeta struct {
	RequestID string
	IPAddress string
	UserAgent string
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every event queued with LogAsync has been written.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogPurchase records a purchase attempt. A nil err marks it successful.
func (s *Service) LogPurchase(meta RequestMeta, userID, audiobookID uint, purchaseID uint, err error) {
	event := newEvent(meta, userID, entities.AuditEventPurchase, "audiobook_purchase")
	event.Description = fmt.Sprintf("Purchase of audiobook %d", audiobookID)
	event.EntityType = "purchase"
	if purchaseID > 0 {
		event.EntityID = &purchaseID
	}
	event.Metadata = encodeMetadata(map[string]any{"audiobook_id": audiobookID})
	markFailed(event, err)

	s.LogAsync(event)
}

// LogProgress records a playback position write.
func (s *Service) LogProgress(meta RequestMeta, userID, audiobookID uint, positionSeconds int, progressID uint, err error) {
	event := newEvent(meta, userID, entities.AuditEventProgress, "progress_update")
	event.Description = fmt.Sprintf("Playback position of audiobook %d set to %ds", audiobookID, positionSeconds)
	event.EntityType = "playback_progress"
	if progressID > 0 {
		event.EntityID = &progressID
	}
	event.Metadata = encodeMetadata(map[string]any{
		"audiobook_id":     audiobookID,
		"position_seconds": positionSeconds,
	})
	markFailed(event, err)

	s.LogAsync(event)
}

// LogMaintenance records housekeeping performed by background tasks.
func (s *Service) LogMaintenance(action, description string, err error) {
	event := newEvent(RequestMeta{}, 0, entities.AuditEventMaintenance, action)
	event.Description = description
	markFailed(event, err)

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(userID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(userID, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	return s.repo.DeleteOldEvents(retention)
}

func newEvent(meta RequestMeta, userID uint, eventType entities.AuditEventType, action string) *entities.AuditEvent {
	return &entities.AuditEvent{
		UserID:    userID,
		EventType: eventType,
		Action:    action,
		RequestID: meta.RequestID,
		IPAddress: meta.IPAddress,
		UserAgent: truncate(meta.UserAgent, 500),
		Status:    entities.AuditStatusSuccess,
	}
}

func markFailed(event *entities.AuditEvent, err error) {
	if err == nil {
		return
	}
	event.Status = entities.AuditStatusFailed
	event.ErrorMsg = truncate(err.Error(), 500)
}

func encodeMetadata(metadata map[string]any) string {
	mdBytes, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(mdBytes)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
