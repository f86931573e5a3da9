package usecase

import (
	"context"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService answers which seats of a session can still be sold.
// Every call reads committed ticket rows; nothing is cached.
type AvailabilityService interface {
	AvailableSeats(ctx context.Context, sessionID uuid.UUID) ([]*entity.Seat, error)
	SeatMap(ctx context.Context, sessionID uuid.UUID) ([]entity.SeatStatus, error)
}

type availabilityService struct {
	core
}

func newAvailabilityService(c core) AvailabilityService {
	c.log = c.log.With(zap.String("service", "availability"))
	return &availabilityService{core: c}
}

func (s *availabilityService) AvailableSeats(ctx context.Context, sessionID uuid.UUID) ([]*entity.Seat, error) {
	var session *entity.Session
	err := s.persist(ctx, system, "load session", func(ctx context.Context) (err error) {
		session, err = s.repo.Session.FindByID(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	var seats []*entity.Seat
	err = s.persist(ctx, system, "list available seats", func(ctx context.Context) (err error) {
		seats, err = s.repo.Seat.FindAvailableBySession(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return seats, nil
}

// SeatMap lists every hall seat with its taken flag and undiscounted price.
func (s *availabilityService) SeatMap(ctx context.Context, sessionID uuid.UUID) ([]entity.SeatStatus, error) {
	info, err := s.sessionInfo(ctx, system, sessionID)
	if err != nil {
		return nil, err
	}

	var (
		seats []*entity.Seat
		taken []uuid.UUID
	)
	err = s.persist(ctx, system, "list hall seats", func(ctx context.Context) (err error) {
		seats, err = s.repo.Seat.FindByHallID(ctx, info.HallID)
		return err
	})
	if err != nil {
		return nil, err
	}
	err = s.persist(ctx, system, "list taken seats", func(ctx context.Context) (err error) {
		taken, err = s.repo.Ticket.TakenSeatIDs(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}

	takenSet := make(map[uuid.UUID]struct{}, len(taken))
	for _, id := range taken {
		takenSet[id] = struct{}{}
	}

	statuses := make([]entity.SeatStatus, 0, len(seats))
	for _, seat := range seats {
		price, err := s.pricing.Price(info.BasePrice, info.HallSurcharge, seat.Surcharge, 0)
		if err != nil {
			return nil, err
		}
		_, isTaken := takenSet[seat.ID]
		statuses = append(statuses, entity.SeatStatus{
			Seat:  seat,
			Taken: isTaken,
			Price: price,
		})
	}

	return statuses, nil
}
