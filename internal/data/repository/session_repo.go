package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// SessionRepository stores screenings. Create is the only writer that must
// keep sessions of one hall from overlapping.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)
	FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Session, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

const sessionColumns = `id, movie_id, hall_id, start_time, end_time, created_at, updated_at`

func scanSession(row rowScanner) (*entity.Session, error) {
	var session entity.Session
	err := row.Scan(
		&session.ID,
		&session.MovieID,
		&session.HallID,
		&session.StartTime,
		&session.EndTime,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Create inserts the session after locking its hall row, so two schedulers
// working on the same hall run the overlap check one after the other.
// Returns *SessionOverlapError when the window is taken.
func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create session: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	var hallID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM halls WHERE id = $1 FOR UPDATE`, session.HallID).Scan(&hallID)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("lock hall %s: %w", session.HallID, ErrNotFound)
	}
	if err != nil {
		r.log.Error("Failed to lock hall", zap.Error(err), zap.String("hall_id", session.HallID.String()))
		return fmt.Errorf("lock hall %s: %w", session.HallID, err)
	}

	var conflictID uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT id FROM sessions
		WHERE hall_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
		LIMIT 1
	`, session.HallID, session.StartTime, session.EndTime).Scan(&conflictID)
	switch {
	case err == nil:
		return &SessionOverlapError{HallID: session.HallID, ConflictingID: conflictID}
	case !errors.Is(err, pgx.ErrNoRows):
		r.log.Error("Failed to check session overlap", zap.Error(err), zap.String("hall_id", session.HallID.String()))
		return fmt.Errorf("check overlap in hall %s: %w", session.HallID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO sessions (id, movie_id, hall_id, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		session.ID,
		session.MovieID,
		session.HallID,
		session.StartTime,
		session.EndTime,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if database.IsExclusionViolation(err) {
		return &SessionOverlapError{HallID: session.HallID}
	}
	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("movie_id", session.MovieID.String()),
			zap.String("hall_id", session.HallID.String()),
			zap.Time("start_time", session.StartTime),
		)
		return fmt.Errorf("create session for movie %s hall %s: %w", session.MovieID, session.HallID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		if database.IsExclusionViolation(err) {
			return &SessionOverlapError{HallID: session.HallID}
		}
		return fmt.Errorf("commit session %s: %w", session.ID, err)
	}
	committed = true

	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	session, err := scanSession(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find session by ID",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, fmt.Errorf("find session by ID %s: %w", id, err)
	}

	return session, nil
}

func (r *sessionRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE hall_id = $1 ORDER BY start_time`
	return r.list(ctx, query, hallID, "hall_id")
}

func (r *sessionRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE movie_id = $1 ORDER BY start_time`
	return r.list(ctx, query, movieID, "movie_id")
}

func (r *sessionRepository) list(ctx context.Context, query string, id uuid.UUID, field string) ([]*entity.Session, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to list sessions", zap.Error(err), zap.String(field, id.String()))
		return nil, fmt.Errorf("list sessions by %s %s: %w", field, id, err)
	}
	defer rows.Close()

	sessions := []*entity.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			r.log.Error("Failed to scan session row", zap.Error(err))
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// Delete removes the session; its tickets go with it (ON DELETE CASCADE).
func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return fmt.Errorf("delete session %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete session %s: %w", id, ErrNotFound)
	}

	r.log.Info("Session deleted", zap.String("session_id", id.String()))
	return nil
}
