package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session is one scheduled screening of a movie in a hall.
// The window [StartTime, EndTime) never overlaps another session of the same hall.
type Session struct {
	Base
	MovieID   uuid.UUID `db:"movie_id"`
	HallID    uuid.UUID `db:"hall_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
}

// SessionInfo is a session resolved against the movie catalog and hall inventory.
type SessionInfo struct {
	SessionID     uuid.UUID
	MovieID       uuid.UUID
	HallID        uuid.UUID
	MovieTitle    string
	HallNumber    int
	HallName      string
	HallCategory  string
	StartTime     time.Time
	EndTime       time.Time
	BasePrice     decimal.Decimal
	HallSurcharge decimal.Decimal
}
