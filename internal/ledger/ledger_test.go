package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"cinema-ticketing/internal/clock"
	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type memorySink struct {
	entries []entity.ActivityEntry
	err     error
}

func (m *memorySink) Name() string { return "memory" }

func (m *memorySink) Write(_ context.Context, e *entity.ActivityEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, *e)
	return nil
}

func TestRecorder_FansOutAndSurvivesSinkFailure(t *testing.T) {
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	broken := &memorySink{err: errors.New("db down")}
	good := &memorySink{}
	rec := NewRecorder(zap.NewNop(), clock.Fixed(now), broken, good)

	actor := uuid.New()
	rec.Record(context.Background(), entity.ActivityEntry{
		ActorID:   &actor,
		ActorRole: entity.ActorUser,
		EventType: entity.ActivityTicketPurchase,
	})

	if len(good.entries) != 1 {
		t.Fatalf("expected 1 entry in healthy sink, got %d", len(good.entries))
	}
	got := good.entries[0]
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("expected timestamp %v, got %v", now, got.CreatedAt)
	}
	if got.Result != entity.ResultSuccess {
		t.Fatalf("expected default result SUCCESS, got %s", got.Result)
	}
}

func TestRecorder_RecordError(t *testing.T) {
	sink := &memorySink{}
	rec := NewRecorder(zap.NewNop(), nil, sink)

	rec.RecordError(context.Background(), nil, "", "reserve", errors.New("connection reset"))

	if len(sink.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(sink.entries))
	}
	e := sink.entries[0]
	if e.EventType != entity.ActivityError || e.Result != entity.ResultFailed {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.ActorRole != entity.ActorSystem {
		t.Fatalf("expected System actor without id, got %s", e.ActorRole)
	}
	if !strings.Contains(e.Description, "reserve") || !strings.Contains(e.Description, "connection reset") {
		t.Fatalf("description should name operation and cause, got %q", e.Description)
	}
}

func TestRecorder_RecordErrorRole(t *testing.T) {
	actor := uuid.New()
	tests := []struct {
		name    string
		actorID *uuid.UUID
		role    entity.ActorRole
		want    entity.ActorRole
	}{
		{"no actor", nil, "", entity.ActorSystem},
		{"actor without role", &actor, "", entity.ActorUser},
		{"admin actor", &actor, entity.ActorAdmin, entity.ActorAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &memorySink{}
			rec := NewRecorder(zap.NewNop(), nil, sink)
			rec.RecordError(context.Background(), tt.actorID, tt.role, "delete session", errors.New("disk full"))
			if len(sink.entries) != 1 || sink.entries[0].ActorRole != tt.want {
				t.Fatalf("entries = %+v, want role %s", sink.entries, tt.want)
			}
		})
	}
}

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

func (f *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return nil
}

func TestAMQPSink_PublishesPersistentJSON(t *testing.T) {
	pub := &fakePublisher{}
	sink := newAMQPSink(pub, "booking.activity")

	ticketID := uuid.New()
	entry := &entity.ActivityEntry{
		ActorRole:   entity.ActorAdmin,
		EventType:   entity.ActivityTicketCancel,
		EntityID:    &ticketID,
		Description: "refund 333.00",
		Result:      entity.ResultSuccess,
		CreatedAt:   time.Now(),
	}
	if err := sink.Write(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pub.exchange != "" || pub.key != "booking.activity" {
		t.Fatalf("expected default exchange and queue routing key, got %q/%q", pub.exchange, pub.key)
	}
	if pub.msg.DeliveryMode != amqp.Persistent {
		t.Fatalf("expected persistent delivery, got %d", pub.msg.DeliveryMode)
	}

	var decoded entity.ActivityEntry
	if err := json.Unmarshal(pub.msg.Body, &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if decoded.EventType != entity.ActivityTicketCancel || decoded.EntityID == nil || *decoded.EntityID != ticketID {
		t.Fatalf("unexpected decoded entry %+v", decoded)
	}
}
