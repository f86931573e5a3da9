package repository

import (
	"cinema-ticketing/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Movie    MovieRepository
	Hall     HallRepository
	Seat     SeatRepository
	Session  SessionRepository
	Ticket   TicketRepository
	Activity ActivityRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Movie:    NewMovieRepository(db, log),
		Hall:     NewHallRepository(db, log),
		Seat:     NewSeatRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Ticket:   NewTicketRepository(db, log),
		Activity: NewActivityRepository(db, log),
	}
}
