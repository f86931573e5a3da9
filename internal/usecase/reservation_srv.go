package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-ticketing/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationRequest asks for a set of seats of one session for one user.
type ReservationRequest struct {
	SessionID       uuid.UUID
	SeatIDs         []uuid.UUID
	UserID          uuid.UUID
	DiscountPercent int
}

type ReservationService interface {
	// Reserve issues one ticket per seat, all or nothing.
	Reserve(ctx context.Context, req ReservationRequest) ([]*entity.Ticket, error)
	Cancel(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool) error

	GetTicket(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool) (*entity.TicketView, error)
	UserTickets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.TicketView, int64, error)
	SessionTickets(ctx context.Context, sessionID uuid.UUID) ([]*entity.TicketView, error)
}

type reservationService struct {
	core
	policy CancellationPolicy
}

func newReservationService(c core, policy CancellationPolicy) ReservationService {
	c.log = c.log.With(zap.String("service", "reservation"))
	return &reservationService{core: c, policy: policy}
}

func uniqueSeatIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *reservationService) Reserve(ctx context.Context, req ReservationRequest) ([]*entity.Ticket, error) {
	who := asUser(req.UserID)
	seatIDs := uniqueSeatIDs(req.SeatIDs)
	if len(seatIDs) == 0 {
		return nil, ErrNoSeats
	}
	if req.DiscountPercent < 0 || req.DiscountPercent > 100 {
		return nil, ErrInvalidDiscount
	}

	var user *entity.User
	err := s.persist(ctx, who, "load user", func(ctx context.Context) (err error) {
		user, err = s.repo.User.FindByID(ctx, req.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	info, err := s.sessionInfo(ctx, who, req.SessionID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if !info.StartTime.After(now) {
		return nil, ErrSessionStarted
	}

	var seats []*entity.Seat
	err = s.persist(ctx, who, "load seats", func(ctx context.Context) (err error) {
		seats, err = s.repo.Seat.FindSeatsForBooking(ctx, info.HallID, seatIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	seatByID := make(map[uuid.UUID]*entity.Seat, len(seats))
	for _, seat := range seats {
		seatByID[seat.ID] = seat
	}
	var foreign []uuid.UUID
	for _, id := range seatIDs {
		if _, ok := seatByID[id]; !ok {
			foreign = append(foreign, id)
		}
	}
	if len(foreign) > 0 {
		s.log.Warn("Reservation names seats outside the session hall",
			zap.String("session_id", info.SessionID.String()),
			zap.Int("foreign_count", len(foreign)),
		)
		return nil, &SeatNotInHallError{SeatIDs: foreign}
	}

	tickets := make([]*entity.Ticket, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat := seatByID[id]
		price, err := s.pricing.Price(info.BasePrice, info.HallSurcharge, seat.Surcharge, req.DiscountPercent)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, &entity.Ticket{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			SessionID:       info.SessionID,
			SeatID:          id,
			HolderID:        req.UserID,
			DiscountPercent: req.DiscountPercent,
			FinalPrice:      price,
		})
	}

	var taken []uuid.UUID
	err = s.persist(ctx, who, "claim seats", func(ctx context.Context) (err error) {
		taken, err = s.repo.Ticket.ClaimSeats(ctx, tickets)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		s.log.Info("Reservation lost seats to another buyer",
			zap.String("session_id", info.SessionID.String()),
			zap.String("user_id", req.UserID.String()),
			zap.Int("requested", len(seatIDs)),
			zap.Int("taken", len(taken)),
		)
		return nil, &SeatsUnavailableError{SeatIDs: taken}
	}

	for _, t := range tickets {
		seat := seatByID[t.SeatID]
		s.ledger.Record(ctx, entity.ActivityEntry{
			ActorID:   who.id,
			ActorRole: entity.ActorUser,
			EventType: entity.ActivityTicketPurchase,
			EntityID:  &t.ID,
			Description: fmt.Sprintf("%s seat %s for %q at %s, %d%% off, paid %s",
				user.Username, seat.Label(), info.MovieTitle,
				info.StartTime.Format(time.RFC3339), t.DiscountPercent, t.FinalPrice.StringFixed(s.pricing.Places)),
		})
	}

	s.log.Info("Tickets issued",
		zap.String("session_id", info.SessionID.String()),
		zap.String("user_id", req.UserID.String()),
		zap.Int("seat_count", len(tickets)),
	)

	return tickets, nil
}

// Cancel deletes a ticket, freeing its seat. Holders are bound by the
// cancellation policy; admins may cancel any ticket at any time.
func (s *reservationService) Cancel(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool) error {
	who := asUser(requesterID)
	if isAdmin {
		who = asAdmin(requesterID)
	}

	var view *entity.TicketView
	err := s.persist(ctx, who, "load ticket", func(ctx context.Context) (err error) {
		view, err = s.repo.Ticket.FindViewByID(ctx, ticketID)
		return err
	})
	if err != nil {
		return err
	}
	if view == nil {
		return ErrTicketNotFound
	}

	if !isAdmin && view.HolderID != requesterID {
		s.log.Warn("Cancel refused, not the holder",
			zap.String("ticket_id", ticketID.String()),
			zap.String("requester_id", requesterID.String()),
		)
		return ErrNotOwner
	}

	if !s.policy.IsCancellable(view, isAdmin) {
		return ErrCancellationWindowClosed
	}

	var deleted *entity.Ticket
	err = s.persist(ctx, who, "delete ticket", func(ctx context.Context) (err error) {
		deleted, err = s.repo.Ticket.Delete(ctx, ticketID)
		return err
	})
	if err != nil {
		return err
	}
	if deleted == nil {
		// lost the race against another cancel
		return ErrTicketNotFound
	}

	refund := deleted.FinalPrice.StringFixed(s.pricing.Places)
	seatLabel := fmt.Sprintf("R%d-S%d", view.RowNumber, view.SeatNumber)
	entry := entity.ActivityEntry{
		ActorID:     who.id,
		ActorRole:   entity.ActorUser,
		EventType:   entity.ActivityTicketCancel,
		EntityID:    &deleted.ID,
		Description: fmt.Sprintf("Cancelled seat %s for %q, refund %s", seatLabel, view.MovieTitle, refund),
	}
	if isAdmin {
		entry.ActorRole = entity.ActorAdmin
		entry.Description = fmt.Sprintf("Admin cancelled seat %s for %q held by %s, refund %s; policy overridden",
			seatLabel, view.MovieTitle, view.HolderName, refund)
	}
	s.ledger.Record(ctx, entry)

	s.log.Info("Ticket cancelled",
		zap.String("ticket_id", ticketID.String()),
		zap.String("requester_id", requesterID.String()),
		zap.Bool("admin", isAdmin),
	)
	return nil
}

func (s *reservationService) GetTicket(ctx context.Context, ticketID, requesterID uuid.UUID, isAdmin bool) (*entity.TicketView, error) {
	who := asUser(requesterID)
	if isAdmin {
		who = asAdmin(requesterID)
	}

	var view *entity.TicketView
	err := s.persist(ctx, who, "load ticket", func(ctx context.Context) (err error) {
		view, err = s.repo.Ticket.FindViewByID(ctx, ticketID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, ErrTicketNotFound
	}
	if !isAdmin && view.HolderID != requesterID {
		return nil, ErrNotOwner
	}
	return view, nil
}

func (s *reservationService) UserTickets(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.TicketView, int64, error) {
	var (
		views []*entity.TicketView
		total int64
	)
	err := s.persist(ctx, asUser(userID), "list user tickets", func(ctx context.Context) (err error) {
		views, err = s.repo.Ticket.FindViewsByUserID(ctx, userID, limit, offset)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	err = s.persist(ctx, asUser(userID), "count user tickets", func(ctx context.Context) (err error) {
		total, err = s.repo.Ticket.CountByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *reservationService) SessionTickets(ctx context.Context, sessionID uuid.UUID) ([]*entity.TicketView, error) {
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

	var views []*entity.TicketView
	err = s.persist(ctx, system, "list session tickets", func(ctx context.Context) (err error) {
		views, err = s.repo.Ticket.FindViewsBySessionID(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
