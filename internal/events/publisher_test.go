package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestEvent_EncodeFieldNames(t *testing.T) {
	t.Parallel()

	e := Event{
		ID:          "e1",
		Type:        MatchConfirmed,
		MatchID:     "m1",
		MatchStatus: "confirmed",
		RideIDs:     []string{"r1", "r2"},
		UserIDs:     []string{"u1", "u2"},
		OccurredAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	b, err := e.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["type"] != "match.confirmed" || m["matchId"] != "m1" || m["matchStatus"] != "confirmed" {
		t.Errorf("unexpected payload %s", b)
	}
	if _, ok := m["actorId"]; ok {
		t.Errorf("expected empty actor to be omitted, got %s", b)
	}
}

func TestNopPublisher(t *testing.T) {
	t.Parallel()

	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), Event{Type: MatchCreated}); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestKafkaPublisher_CloseWithoutWrites(t *testing.T) {
	t.Parallel()

	p := NewKafkaPublisher([]string{"localhost:9092"}, "carpool.match-events")
	if err := p.Close(); err != nil {
		t.Errorf("expected clean close, got %v", err)
	}
}
