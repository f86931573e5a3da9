package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReleaseStatus string

const (
	ReleaseStatusNowPlaying ReleaseStatus = "now_playing"
	ReleaseStatusComingSoon ReleaseStatus = "coming_soon"
)

// Movie is owned by the catalog. The booking engine only reads it.
type Movie struct {
	Base
	Title             string          `db:"title"`
	BasePrice         decimal.Decimal `db:"base_price"`
	DurationInMinutes int             `db:"duration_in_minutes"`
	ReleaseDate       *time.Time      `db:"release_date"`
	ReleaseStatus     ReleaseStatus   `db:"release_status"`
}
