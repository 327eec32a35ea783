// Package events publishes match lifecycle events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Type names a lifecycle event. It doubles as the broker routing key.
type Type string

const (
	MatchCreated         Type = "match.created"
	ConfirmationRecorded Type = "match.confirmation_recorded"
	MatchConfirmed       Type = "match.confirmed"
)

// Event is the payload published for a match state change.
type Event struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	MatchID     string    `json:"matchId"`
	MatchStatus string    `json:"matchStatus"`
	RideIDs     []string  `json:"rideIds"`
	UserIDs     []string  `json:"userIds"`
	ActorID     string    `json:"actorId,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// Encode returns the wire form of e.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
