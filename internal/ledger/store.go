package ledger

import (
	"context"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
)

// StoreSink appends entries to the activity_log table.
type StoreSink struct {
	repo repository.ActivityRepository
}

func NewStoreSink(repo repository.ActivityRepository) *StoreSink {
	return &StoreSink{repo: repo}
}

func (s *StoreSink) Name() string { return "postgres" }

func (s *StoreSink) Write(ctx context.Context, entry *entity.ActivityEntry) error {
	return s.repo.Create(ctx, entry)
}
