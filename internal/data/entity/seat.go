package entity

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Seat struct {
	Base
	HallID     uuid.UUID       `db:"hall_id"`
	RowNumber  int             `db:"row_number"`
	SeatNumber int             `db:"seat_number"`
	Surcharge  decimal.Decimal `db:"surcharge"`
}

// Label renders the seat the way it is printed on tickets, e.g. "R3-S12".
func (s *Seat) Label() string {
	return fmt.Sprintf("R%d-S%d", s.RowNumber, s.SeatNumber)
}

// SeatStatus is one cell of a session seat map.
type SeatStatus struct {
	Seat  *Seat
	Taken bool
	Price decimal.Decimal
}
