package usecase

import (
	"time"

	"cinema-ticketing/internal/clock"
	"cinema-ticketing/internal/data/entity"
)

const DefaultCancellationCutoff = 60 * time.Minute

// CancellationPolicy lets holders cancel only while more than Cutoff remains
// before the session starts. Admins are never restricted.
type CancellationPolicy struct {
	Cutoff time.Duration
	Clock  clock.Clock
}

func NewCancellationPolicy(cutoff time.Duration, clk clock.Clock) CancellationPolicy {
	if cutoff < 0 {
		cutoff = DefaultCancellationCutoff
	}
	if clk == nil {
		clk = clock.System()
	}
	return CancellationPolicy{Cutoff: cutoff, Clock: clk}
}

func (p CancellationPolicy) IsCancellable(ticket *entity.TicketView, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return ticket.StartTime.Sub(p.Clock.Now()) > p.Cutoff
}
