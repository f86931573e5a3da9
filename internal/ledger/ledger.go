// Package ledger records booking activity. Recording never fails the caller:
// sink errors are logged and dropped.
package ledger

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/clock"
	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ledger is what the booking services talk to.
type Ledger interface {
	Record(ctx context.Context, entry entity.ActivityEntry)
	RecordError(ctx context.Context, actorID *uuid.UUID, role entity.ActorRole, operation string, err error)
}

// Sink is one destination for activity entries.
type Sink interface {
	Name() string
	Write(ctx context.Context, entry *entity.ActivityEntry) error
}

type Recorder struct {
	sinks []Sink
	clock clock.Clock
	log   *zap.Logger
}

func NewRecorder(log *zap.Logger, clk clock.Clock, sinks ...Sink) *Recorder {
	if clk == nil {
		clk = clock.System()
	}
	return &Recorder{
		sinks: sinks,
		clock: clk,
		log:   log.With(zap.String("component", "ledger")),
	}
}

func (r *Recorder) Record(ctx context.Context, entry entity.ActivityEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.clock.Now()
	}
	if entry.Result == "" {
		entry.Result = entity.ResultSuccess
	}

	fields := []zap.Field{
		zap.String("event_type", string(entry.EventType)),
		zap.String("actor_role", string(entry.ActorRole)),
		zap.String("result", string(entry.Result)),
		zap.String("description", entry.Description),
	}
	if entry.ActorID != nil {
		fields = append(fields, zap.String("actor_id", entry.ActorID.String()))
	}
	if entry.EntityID != nil {
		fields = append(fields, zap.String("entity_id", entry.EntityID.String()))
	}
	r.log.Info("Activity", fields...)

	// Sinks get a context that survives the request being cancelled.
	sinkCtx := context.WithoutCancel(ctx)
	for _, sink := range r.sinks {
		e := entry
		if err := sink.Write(sinkCtx, &e); err != nil {
			r.log.Warn("Activity sink failed",
				zap.String("sink", sink.Name()),
				zap.String("event_type", string(entry.EventType)),
				zap.Error(err),
			)
		}
	}
}

// RecordError logs a failed operation. An empty role means System without an
// actor id and User with one.
func (r *Recorder) RecordError(ctx context.Context, actorID *uuid.UUID, role entity.ActorRole, operation string, err error) {
	if role == "" {
		role = entity.ActorSystem
		if actorID != nil {
			role = entity.ActorUser
		}
	}
	r.Record(ctx, entity.ActivityEntry{
		ActorID:     actorID,
		ActorRole:   role,
		EventType:   entity.ActivityError,
		Description: fmt.Sprintf("%s: %v", operation, err),
		Result:      entity.ResultFailed,
	})
}
