package repository

import (
	"context"
	"fmt"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

type ActivityRepository interface {
	Create(ctx context.Context, entry *entity.ActivityEntry) error
	FindRecent(ctx context.Context, limit, offset int) ([]*entity.ActivityEntry, error)
	Count(ctx context.Context) (int64, error)
}

type activityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewActivityRepository(db database.PgxIface, log *zap.Logger) ActivityRepository {
	return &activityRepository{
		db:  db,
		log: log.With(zap.String("repository", "activity")),
	}
}

func (r *activityRepository) Create(ctx context.Context, entry *entity.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (actor_id, actor_role, event_type, entity_id, description, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		entry.ActorID,
		entry.ActorRole,
		entry.EventType,
		entry.EntityID,
		entry.Description,
		entry.Result,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		// No Error log here: the ledger reports sink failures itself.
		return fmt.Errorf("create activity %s: %w", entry.EventType, err)
	}

	return nil
}

func (r *activityRepository) FindRecent(ctx context.Context, limit, offset int) ([]*entity.ActivityEntry, error) {
	query := `
		SELECT id, actor_id, actor_role, event_type, entity_id, description, result, created_at
		FROM activity_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list activity", zap.Error(err))
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	entries := []*entity.ActivityEntry{}
	for rows.Next() {
		var e entity.ActivityEntry
		if err := rows.Scan(
			&e.ID,
			&e.ActorID,
			&e.ActorRole,
			&e.EventType,
			&e.EntityID,
			&e.Description,
			&e.Result,
			&e.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan activity row", zap.Error(err))
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

func (r *activityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM activity_log`).Scan(&count); err != nil {
		r.log.Error("Failed to count activity", zap.Error(err))
		return 0, fmt.Errorf("count activity: %w", err)
	}
	return count, nil
}
