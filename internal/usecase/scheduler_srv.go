package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateSessionInput struct {
	MovieID   uuid.UUID
	HallID    uuid.UUID
	StartTime time.Time
}

type SchedulerService interface {
	SessionInfo(ctx context.Context, sessionID uuid.UUID) (*entity.SessionInfo, error)
	CreateSession(ctx context.Context, adminID uuid.UUID, in CreateSessionInput) (*entity.Session, error)
	DeleteSession(ctx context.Context, adminID, sessionID uuid.UUID) error
	ListByHall(ctx context.Context, hallID uuid.UUID) ([]*entity.Session, error)
	ListByMovie(ctx context.Context, movieID uuid.UUID) ([]*entity.Session, error)
}

type schedulerService struct {
	core
	defaultRuntime time.Duration
}

func newSchedulerService(c core, defaultRuntime time.Duration) SchedulerService {
	c.log = c.log.With(zap.String("service", "scheduler"))
	if defaultRuntime <= 0 {
		defaultRuntime = 2 * time.Hour
	}
	return &schedulerService{core: c, defaultRuntime: defaultRuntime}
}

func (s *schedulerService) SessionInfo(ctx context.Context, sessionID uuid.UUID) (*entity.SessionInfo, error) {
	return s.sessionInfo(ctx, system, sessionID)
}

// CreateSession schedules a movie in a hall. The session occupies
// [start, start+runtime) and is refused if that window overlaps another
// session of the same hall.
func (s *schedulerService) CreateSession(ctx context.Context, adminID uuid.UUID, in CreateSessionInput) (*entity.Session, error) {
	who := asAdmin(adminID)
	now := s.clock.Now()

	if !in.StartTime.After(now) {
		return nil, ErrSessionInPast
	}

	var (
		movie *entity.Movie
		hall  *entity.Hall
	)
	err := s.persist(ctx, who, "load movie", func(ctx context.Context) (err error) {
		movie, err = s.repo.Movie.FindByID(ctx, in.MovieID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}

	err = s.persist(ctx, who, "load hall", func(ctx context.Context) (err error) {
		hall, err = s.repo.Hall.FindByID(ctx, in.HallID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if hall == nil {
		return nil, ErrHallNotFound
	}

	runtime := time.Duration(movie.DurationInMinutes) * time.Minute
	if runtime <= 0 {
		runtime = s.defaultRuntime
	}

	session := &entity.Session{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movie.ID,
		HallID:    hall.ID,
		StartTime: in.StartTime,
		EndTime:   in.StartTime.Add(runtime),
	}

	var overlap *repository.SessionOverlapError
	var createErr error
	err = s.persist(ctx, who, "create session", func(ctx context.Context) error {
		createErr = s.repo.Session.Create(ctx, session)
		if errors.As(createErr, &overlap) || errors.Is(createErr, repository.ErrNotFound) {
			return nil
		}
		return createErr
	})
	if err != nil {
		return nil, err
	}
	if overlap != nil {
		s.log.Warn("Session overlaps existing session",
			zap.String("hall_id", hall.ID.String()),
			zap.String("conflicting_session_id", overlap.ConflictingID.String()),
			zap.Time("start_time", session.StartTime),
		)
		return nil, &SessionConflictError{ConflictingSessionID: overlap.ConflictingID}
	}
	if errors.Is(createErr, repository.ErrNotFound) {
		// hall removed between lookup and insert
		return nil, ErrHallNotFound
	}

	s.ledger.Record(ctx, entity.ActivityEntry{
		ActorID:   who.id,
		ActorRole: entity.ActorAdmin,
		EventType: entity.ActivitySessionCreate,
		EntityID:  &session.ID,
		Description: fmt.Sprintf("Scheduled %q in hall %d from %s to %s",
			movie.Title, hall.HallNumber,
			session.StartTime.Format(time.RFC3339), session.EndTime.Format(time.RFC3339)),
	})

	s.log.Info("Session created",
		zap.String("session_id", session.ID.String()),
		zap.String("movie_id", movie.ID.String()),
		zap.String("hall_id", hall.ID.String()),
		zap.Time("start_time", session.StartTime),
		zap.Time("end_time", session.EndTime),
	)

	return session, nil
}

// DeleteSession removes a session together with every ticket sold for it.
func (s *schedulerService) DeleteSession(ctx context.Context, adminID, sessionID uuid.UUID) error {
	who := asAdmin(adminID)

	var missing bool
	err := s.persist(ctx, who, "delete session", func(ctx context.Context) error {
		err := s.repo.Session.Delete(ctx, sessionID)
		if errors.Is(err, repository.ErrNotFound) {
			missing = true
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}
	if missing {
		return ErrSessionNotFound
	}

	s.ledger.Record(ctx, entity.ActivityEntry{
		ActorID:     who.id,
		ActorRole:   entity.ActorAdmin,
		EventType:   entity.ActivitySessionDelete,
		EntityID:    &sessionID,
		Description: "Session deleted with its tickets",
	})
	return nil
}

func (s *schedulerService) ListByHall(ctx context.Context, hallID uuid.UUID) ([]*entity.Session, error) {
	var sessions []*entity.Session
	err := s.persist(ctx, system, "list sessions by hall", func(ctx context.Context) (err error) {
		sessions, err = s.repo.Session.FindByHallID(ctx, hallID)
		return err
	})
	return sessions, err
}

func (s *schedulerService) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]*entity.Session, error) {
	var sessions []*entity.Session
	err := s.persist(ctx, system, "list sessions by movie", func(ctx context.Context) (err error) {
		sessions, err = s.repo.Session.FindByMovieID(ctx, movieID)
		return err
	})
	return sessions, err
}
