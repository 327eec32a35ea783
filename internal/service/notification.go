package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/events"
	"carpool/internal/metrics"
)

// NotificationService announces match state changes on the event broker.
// Delivery is best effort: failures are logged and counted, never returned to
// the operation that triggered them.
type NotificationService struct {
	publisher events.Publisher
	logger    *slog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(publisher events.Publisher, logger *slog.Logger) *NotificationService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &NotificationService{publisher: publisher, logger: logger}
}

// NotifyMatchCreated announces a new match awaiting confirmation.
func (s *NotificationService) NotifyMatchCreated(ctx context.Context, m *domain.Match) error {
	return s.send(ctx, newEvent(events.MatchCreated, m, ""))
}

// NotifyConfirmationRecorded announces that userID confirmed the match.
func (s *NotificationService) NotifyConfirmationRecorded(ctx context.Context, m *domain.Match, userID string) error {
	return s.send(ctx, newEvent(events.ConfirmationRecorded, m, userID))
}

// NotifyMatchConfirmed announces that every participant confirmed the match.
func (s *NotificationService) NotifyMatchConfirmed(ctx context.Context, m *domain.Match) error {
	return s.send(ctx, newEvent(events.MatchConfirmed, m, ""))
}

func newEvent(t events.Type, m *domain.Match, actorID string) events.Event {
	return events.Event{
		ID:          uuid.New().String(),
		Type:        t,
		MatchID:     m.ID,
		MatchStatus: string(m.Status),
		RideIDs:     m.RideIDs(),
		UserIDs:     []string{m.User1ID, m.User2ID},
		ActorID:     actorID,
		OccurredAt:  time.Now().UTC(),
	}
}

func (s *NotificationService) send(ctx context.Context, e events.Event) error {
	if err := s.publisher.Publish(ctx, e); err != nil {
		metrics.EventPublishFailures.WithLabelValues(string(e.Type)).Inc()
		s.logger.WarnContext(ctx, "event publish failed",
			"event_type", e.Type,
			"match_id", e.MatchID,
			"error", err,
		)
		return err
	}
	s.logger.DebugContext(ctx, "event published", "event_type", e.Type, "match_id", e.MatchID)
	return nil
}

// Close releases the broker connection.
func (s *NotificationService) Close() error {
	return s.publisher.Close()
}
