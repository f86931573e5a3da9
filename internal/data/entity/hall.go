package entity

import "github.com/shopspring/decimal"

type Hall struct {
	Base
	HallNumber int             `db:"hall_number"`
	Name       string          `db:"name"`
	Category   string          `db:"category"` // regular, vip, imax...
	Surcharge  decimal.Decimal `db:"surcharge"`
}
