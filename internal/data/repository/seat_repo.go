package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error)

	// FindSeatsForBooking returns the requested seats that belong to hallID.
	// Ids from other halls, or unknown ids, are simply absent from the result.
	FindSeatsForBooking(ctx context.Context, hallID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Seat, error)

	// FindAvailableBySession returns hall seats with no ticket for the session.
	FindAvailableBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Seat, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

const seatColumns = `st.id, st.hall_id, st.row_number, st.seat_number, st.surcharge, st.created_at, st.updated_at`

func collectSeats(rows pgx.Rows) ([]*entity.Seat, error) {
	defer rows.Close()

	seats := []*entity.Seat{}
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.HallID,
			&seat.RowNumber,
			&seat.SeatNumber,
			&seat.Surcharge,
			&seat.CreatedAt,
			&seat.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, rows.Err()
}

func (r *seatRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM seats st
		WHERE st.hall_id = $1
		ORDER BY st.row_number, st.seat_number
	`

	rows, err := r.db.Query(ctx, query, hallID)
	if err != nil {
		r.log.Error("Failed to find seats by hall ID",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("find seats by hall ID %s: %w", hallID, err)
	}

	seats, err := collectSeats(rows)
	if err != nil {
		r.log.Error("Failed to read seats", zap.Error(err), zap.String("hall_id", hallID.String()))
		return nil, err
	}
	return seats, nil
}

func (r *seatRepository) FindSeatsForBooking(ctx context.Context, hallID uuid.UUID, seatIDs []uuid.UUID) ([]*entity.Seat, error) {
	if len(seatIDs) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `
		SELECT ` + seatColumns + `
		FROM seats st
		WHERE st.hall_id = $1 AND st.id = ANY($2)
		ORDER BY st.row_number, st.seat_number
	`

	rows, err := r.db.Query(ctx, query, hallID, seatIDs)
	if err != nil {
		r.log.Error("Failed to find seats for booking",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
			zap.Int("seat_count", len(seatIDs)),
		)
		return nil, fmt.Errorf("find seats for booking in hall %s: %w", hallID, err)
	}

	return collectSeats(rows)
}

func (r *seatRepository) FindAvailableBySession(ctx context.Context, sessionID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT ` + seatColumns + `
		FROM sessions s
		JOIN seats st ON st.hall_id = s.hall_id
		WHERE s.id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM tickets t
			WHERE t.session_id = s.id AND t.seat_id = st.id
		  )
		ORDER BY st.row_number, st.seat_number
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to find available seats",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("find available seats for session %s: %w", sessionID, err)
	}

	return collectSeats(rows)
}
