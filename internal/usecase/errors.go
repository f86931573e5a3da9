package usecase

import (
	"errors"
	"fmt"
	"strings"

	"cinema-ticketing/internal/pricing"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound          = errors.New("session not found")
	ErrHallNotFound             = errors.New("hall not found")
	ErrMovieNotFound            = errors.New("movie not found")
	ErrUserNotFound             = errors.New("user not found")
	ErrTicketNotFound           = errors.New("ticket not found")
	ErrSeatNotInHall            = errors.New("seat does not belong to the session hall")
	ErrSeatsUnavailable         = errors.New("seats are no longer available")
	ErrInvalidDiscount          = pricing.ErrInvalidDiscount
	ErrNotOwner                 = errors.New("ticket belongs to another user")
	ErrCancellationWindowClosed = errors.New("cancellation window has closed")
	ErrSessionConflict          = errors.New("hall already has a session in this time window")
	ErrSessionStarted           = errors.New("session has already started")
	ErrSessionInPast            = errors.New("session start must be in the future")
	ErrNoSeats                  = errors.New("at least one seat is required")
	ErrPersistence              = errors.New("persistence failure")
)

func joinIDs(ids []uuid.UUID) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = id.String()
	}
	return strings.Join(s, ", ")
}

// SeatsUnavailableError lists exactly the requested seats that were already sold.
type SeatsUnavailableError struct {
	SeatIDs []uuid.UUID
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSeatsUnavailable, joinIDs(e.SeatIDs))
}

func (e *SeatsUnavailableError) Is(target error) bool { return target == ErrSeatsUnavailable }

// SeatNotInHallError lists requested seats that are not part of the session hall.
type SeatNotInHallError struct {
	SeatIDs []uuid.UUID
}

func (e *SeatNotInHallError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSeatNotInHall, joinIDs(e.SeatIDs))
}

func (e *SeatNotInHallError) Is(target error) bool { return target == ErrSeatNotInHall }

// SessionConflictError carries the session already occupying the window, when known.
type SessionConflictError struct {
	ConflictingSessionID uuid.UUID
}

func (e *SessionConflictError) Error() string {
	if e.ConflictingSessionID == uuid.Nil {
		return ErrSessionConflict.Error()
	}
	return fmt.Sprintf("%v: %s", ErrSessionConflict, e.ConflictingSessionID)
}

func (e *SessionConflictError) Is(target error) bool { return target == ErrSessionConflict }

// PersistenceError wraps a storage failure that survived one retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
