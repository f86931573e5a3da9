// Package pricing turns a session's price components into a ticket price.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidDiscount = errors.New("discount percent must be between 0 and 100")

var hundred = decimal.NewFromInt(100)

// Calculator rounds every result to Places decimal digits (the currency minor unit).
type Calculator struct {
	Places int32
}

func NewCalculator(minorUnits int32) Calculator {
	if minorUnits < 0 {
		minorUnits = 0
	}
	return Calculator{Places: minorUnits}
}

// Price computes (base + hall + seat) * (1 - discount/100).
// A negative component sum is treated as zero, so the result is never negative.
func (c Calculator) Price(base, hall, seat decimal.Decimal, discountPercent int) (decimal.Decimal, error) {
	if discountPercent < 0 || discountPercent > 100 {
		return decimal.Zero, ErrInvalidDiscount
	}

	gross := base.Add(hall).Add(seat)
	if gross.IsNegative() {
		gross = decimal.Zero
	}

	factor := decimal.NewFromInt(int64(100 - discountPercent)).Div(hundred)
	return gross.Mul(factor).Round(c.Places), nil
}

var defaultCalculator = NewCalculator(2)

// Price uses two decimal places.
func Price(base, hall, seat decimal.Decimal, discountPercent int) (decimal.Decimal, error) {
	return defaultCalculator.Price(base, hall, seat, discountPercent)
}
