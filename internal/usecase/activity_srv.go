package usecase

import (
	"context"

	"cinema-ticketing/internal/data/entity"

	"go.uber.org/zap"
)

// ActivityService reads back the audit trail written by the ledger.
type ActivityService interface {
	Recent(ctx context.Context, limit, offset int) ([]*entity.ActivityEntry, int64, error)
}

type activityService struct {
	core
}

func newActivityService(c core) ActivityService {
	c.log = c.log.With(zap.String("service", "activity"))
	return &activityService{core: c}
}

func (s *activityService) Recent(ctx context.Context, limit, offset int) ([]*entity.ActivityEntry, int64, error) {
	var (
		entries []*entity.ActivityEntry
		total   int64
	)
	err := s.persist(ctx, system, "list activity", func(ctx context.Context) (err error) {
		entries, err = s.repo.Activity.FindRecent(ctx, limit, offset)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	err = s.persist(ctx, system, "count activity", func(ctx context.Context) (err error) {
		total, err = s.repo.Activity.Count(ctx)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
