package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is a sold seat. At most one ticket exists per (session, seat).
type Ticket struct {
	BaseSimple
	SessionID       uuid.UUID       `db:"session_id"`
	SeatID          uuid.UUID       `db:"seat_id"`
	HolderID        uuid.UUID       `db:"user_id"`
	DiscountPercent int             `db:"discount_percent"`
	FinalPrice      decimal.Decimal `db:"final_price"`
}

// TicketView is a ticket joined with everything needed to print or list it.
type TicketView struct {
	Ticket
	HolderName   string
	MovieTitle   string
	HallNumber   int
	HallName     string
	HallCategory string
	StartTime    time.Time
	RowNumber    int
	SeatNumber   int
}
