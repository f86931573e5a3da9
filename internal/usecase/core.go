package usecase

import (
	"context"

	"cinema-ticketing/internal/clock"
	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/ledger"
	"cinema-ticketing/internal/pricing"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// actor is who a storage failure is charged to in the ledger.
type actor struct {
	id   *uuid.UUID
	role entity.ActorRole
}

var system = actor{role: entity.ActorSystem}

func asUser(id uuid.UUID) actor { return actor{id: &id, role: entity.ActorUser} }

func asAdmin(id uuid.UUID) actor { return actor{id: &id, role: entity.ActorAdmin} }

// core holds what every booking service shares.
type core struct {
	repo    *repository.Repository
	ledger  ledger.Ledger
	clock   clock.Clock
	pricing pricing.Calculator
	log     *zap.Logger
}

// persist runs a storage call, repeats it once on a transient failure and
// turns whatever is left into a *PersistenceError reported to the ledger.
func (c *core) persist(ctx context.Context, who actor, op string, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err != nil && database.IsTransient(err) && ctx.Err() == nil {
		c.log.Warn("Transient storage failure, retrying", zap.String("op", op), zap.Error(err))
		err = fn(ctx)
	}
	if err == nil {
		return nil
	}

	c.log.Error("Storage failure", zap.String("op", op), zap.Error(err))
	c.ledger.RecordError(ctx, who.id, who.role, op, err)
	return &PersistenceError{Op: op, Err: err}
}

// sessionInfo resolves a session against the catalog and hall inventory.
func (c *core) sessionInfo(ctx context.Context, who actor, sessionID uuid.UUID) (*entity.SessionInfo, error) {
	var (
		session *entity.Session
		movie   *entity.Movie
		hall    *entity.Hall
	)

	err := c.persist(ctx, who, "load session", func(ctx context.Context) (err error) {
		session, err = c.repo.Session.FindByID(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	err = c.persist(ctx, who, "load session movie", func(ctx context.Context) (err error) {
		movie, err = c.repo.Movie.FindByID(ctx, session.MovieID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	err = c.persist(ctx, who, "load session hall", func(ctx context.Context) (err error) {
		hall, err = c.repo.Hall.FindByID(ctx, session.HallID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if hall == nil {
		return nil, ErrHallNotFound
	}

	return &entity.SessionInfo{
		SessionID:     session.ID,
		MovieID:       movie.ID,
		HallID:        hall.ID,
		MovieTitle:    movie.Title,
		HallNumber:    hall.HallNumber,
		HallName:      hall.Name,
		HallCategory:  hall.Category,
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		BasePrice:     movie.BasePrice,
		HallSurcharge: hall.Surcharge,
	}, nil
}
