package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TicketRepository interface {
	// ClaimSeats inserts every ticket or none. When some seats of the batch
	// already hold a ticket for the session, nothing is written and their
	// seat ids are returned.
	ClaimSeats(ctx context.Context, tickets []*entity.Ticket) (taken []uuid.UUID, err error)

	FindViewByID(ctx context.Context, id uuid.UUID) (*entity.TicketView, error)
	FindViewsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.TicketView, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindViewsBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entity.TicketView, error)
	TakenSeatIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error)

	// Delete removes the ticket and returns it; nil, nil when it was already gone.
	Delete(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = 7

func (r *ticketRepository) ClaimSeats(ctx context.Context, tickets []*entity.Ticket) ([]uuid.UUID, error) {
	if len(tickets) == 0 {
		return nil, nil
	}

	// Same seat order for every writer keeps row locks from deadlocking.
	ordered := make([]*entity.Ticket, len(tickets))
	copy(ordered, tickets)
	sort.Slice(ordered, func(i, j int) bool {
		return bytes.Compare(ordered[i].SeatID[:], ordered[j].SeatID[:]) < 0
	})

	var query strings.Builder
	query.WriteString(`INSERT INTO tickets (id, session_id, seat_id, user_id, discount_percent, final_price, created_at) VALUES `)
	args := make([]any, 0, len(ordered)*ticketColumns)
	for i, t := range ordered {
		if i > 0 {
			query.WriteString(", ")
		}
		n := i * ticketColumns
		fmt.Fprintf(&query, "($%d, $%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6, n+7)
		args = append(args, t.ID, t.SessionID, t.SeatID, t.HolderID, t.DiscountPercent, t.FinalPrice, t.CreatedAt)
	}
	query.WriteString(` ON CONFLICT (session_id, seat_id) DO NOTHING RETURNING seat_id`)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin claim seats: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	rows, err := tx.Query(ctx, query.String(), args...)
	if err != nil {
		r.log.Error("Failed to claim seats",
			zap.Error(err),
			zap.String("session_id", ordered[0].SessionID.String()),
			zap.Int("seat_count", len(ordered)),
		)
		return nil, fmt.Errorf("claim %d seats for session %s: %w", len(ordered), ordered[0].SessionID, err)
	}

	claimed := make(map[uuid.UUID]struct{}, len(ordered))
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan claimed seat: %w", err)
		}
		claimed[seatID] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		r.log.Error("Failed to claim seats", zap.Error(err), zap.String("session_id", ordered[0].SessionID.String()))
		return nil, fmt.Errorf("claim seats for session %s: %w", ordered[0].SessionID, err)
	}

	var taken []uuid.UUID
	for _, t := range ordered {
		if _, ok := claimed[t.SeatID]; !ok {
			taken = append(taken, t.SeatID)
		}
	}
	if len(taken) > 0 {
		return taken, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit claimed seats for session %s: %w", ordered[0].SessionID, err)
	}
	committed = true

	return nil, nil
}

const ticketViewQuery = `
	SELECT t.id, t.session_id, t.seat_id, t.user_id, t.discount_percent, t.final_price, t.created_at,
	       u.username, m.title, h.hall_number, h.name, h.category, s.start_time,
	       st.row_number, st.seat_number
	FROM tickets t
	JOIN sessions s ON s.id = t.session_id
	JOIN movies m ON m.id = s.movie_id
	JOIN halls h ON h.id = s.hall_id
	JOIN seats st ON st.id = t.seat_id
	JOIN users u ON u.id = t.user_id
`

func scanTicketView(row rowScanner) (*entity.TicketView, error) {
	var v entity.TicketView
	err := row.Scan(
		&v.ID,
		&v.SessionID,
		&v.SeatID,
		&v.HolderID,
		&v.DiscountPercent,
		&v.FinalPrice,
		&v.CreatedAt,
		&v.HolderName,
		&v.MovieTitle,
		&v.HallNumber,
		&v.HallName,
		&v.HallCategory,
		&v.StartTime,
		&v.RowNumber,
		&v.SeatNumber,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ticketRepository) collectViews(rows pgx.Rows) ([]*entity.TicketView, error) {
	defer rows.Close()

	views := []*entity.TicketView{}
	for rows.Next() {
		v, err := scanTicketView(rows)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *ticketRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*entity.TicketView, error) {
	v, err := scanTicketView(r.db.QueryRow(ctx, ticketViewQuery+` WHERE t.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id, err)
	}
	return v, nil
}

func (r *ticketRepository) FindViewsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.TicketView, error) {
	query := ticketViewQuery + `
		WHERE t.user_id = $1
		ORDER BY s.start_time DESC, st.row_number, st.seat_number
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find tickets by user ID %s: %w", userID, err)
	}

	return r.collectViews(rows)
}

func (r *ticketRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tickets by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count tickets by user ID %s: %w", userID, err)
	}
	return count, nil
}

func (r *ticketRepository) FindViewsBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*entity.TicketView, error) {
	query := ticketViewQuery + `
		WHERE t.session_id = $1
		ORDER BY st.row_number, st.seat_number
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		r.log.Error("Failed to find tickets by session ID",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("find tickets by session ID %s: %w", sessionID, err)
	}

	return r.collectViews(rows)
}

func (r *ticketRepository) TakenSeatIDs(ctx context.Context, sessionID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT seat_id FROM tickets WHERE session_id = $1`, sessionID)
	if err != nil {
		r.log.Error("Failed to list taken seats",
			zap.Error(err),
			zap.String("session_id", sessionID.String()),
		)
		return nil, fmt.Errorf("list taken seats for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan taken seat: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `
		DELETE FROM tickets
		WHERE id = $1
		RETURNING id, session_id, seat_id, user_id, discount_percent, final_price, created_at
	`

	var t entity.Ticket
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.SessionID,
		&t.SeatID,
		&t.HolderID,
		&t.DiscountPercent,
		&t.FinalPrice,
		&t.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to delete ticket",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("delete ticket %s: %w", id, err)
	}

	r.log.Info("Ticket deleted", zap.String("ticket_id", id.String()))
	return &t, nil
}
