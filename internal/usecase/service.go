package usecase

import (
	"time"

	"cinema-ticketing/internal/clock"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/ledger"
	"cinema-ticketing/internal/pricing"
	"cinema-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Inventory    InventoryService
	Scheduler    SchedulerService
	Availability AvailabilityService
	Reservation  ReservationService
	Activity     ActivityService
}

type Options struct {
	Clock              clock.Clock
	Pricing            pricing.Calculator
	CancellationCutoff time.Duration
	DefaultRuntime     time.Duration
}

func OptionsFromConfig(config *utils.Config) Options {
	return Options{
		Clock:              clock.System(),
		Pricing:            pricing.NewCalculator(config.Booking.CurrencyMinorUnits),
		CancellationCutoff: config.Booking.CancellationCutoff,
		DefaultRuntime:     config.Booking.DefaultRuntime,
	}
}

func NewService(repo *repository.Repository, l ledger.Ledger, opts Options, log *zap.Logger) *Service {
	if opts.Clock == nil {
		opts.Clock = clock.System()
	}
	c := core{
		repo:    repo,
		ledger:  l,
		clock:   opts.Clock,
		pricing: opts.Pricing,
		log:     log,
	}

	return &Service{
		Inventory:    newInventoryService(c),
		Scheduler:    newSchedulerService(c, opts.DefaultRuntime),
		Availability: newAvailabilityService(c),
		Reservation:  newReservationService(c, NewCancellationPolicy(opts.CancellationCutoff, opts.Clock)),
		Activity:     newActivityService(c),
	}
}
