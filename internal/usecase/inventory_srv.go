package usecase

import (
	"context"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryService exposes halls and their fixed seat layouts. Read-only.
type InventoryService interface {
	ListHalls(ctx context.Context) ([]*entity.Hall, error)
	GetHall(ctx context.Context, hallID uuid.UUID) (*entity.Hall, error)
	SeatsOf(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error)
}

type inventoryService struct {
	core
}

func newInventoryService(c core) InventoryService {
	c.log = c.log.With(zap.String("service", "inventory"))
	return &inventoryService{core: c}
}

func (s *inventoryService) ListHalls(ctx context.Context) ([]*entity.Hall, error) {
	var halls []*entity.Hall
	err := s.persist(ctx, system, "list halls", func(ctx context.Context) (err error) {
		halls, err = s.repo.Hall.FindAll(ctx)
		return err
	})
	return halls, err
}

func (s *inventoryService) GetHall(ctx context.Context, hallID uuid.UUID) (*entity.Hall, error) {
	var hall *entity.Hall
	err := s.persist(ctx, system, "load hall", func(ctx context.Context) (err error) {
		hall, err = s.repo.Hall.FindByID(ctx, hallID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if hall == nil {
		return nil, ErrHallNotFound
	}
	return hall, nil
}

// SeatsOf returns the hall's seats ordered by row, then seat number.
func (s *inventoryService) SeatsOf(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	if _, err := s.GetHall(ctx, hallID); err != nil {
		return nil, err
	}

	var seats []*entity.Seat
	err := s.persist(ctx, system, "list hall seats", func(ctx context.Context) (err error) {
		seats, err = s.repo.Seat.FindByHallID(ctx, hallID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return seats, nil
}
