// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"cinema-ticketing/internal/adaptor"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/ledger"
	"cinema-ticketing/internal/usecase"
	"cinema-ticketing/pkg/middleware"
	"cinema-ticketing/pkg/pdf"
	"cinema-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Pinger reports whether the database answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Wiring builds services, handlers and the router. rdb may be nil, which
// turns rate limiting off.
func Wiring(repo *repository.Repository, l ledger.Ledger, db Pinger, rdb *redis.Client, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services dan handlers
	opts := usecase.OptionsFromConfig(config)
	service := usecase.NewService(repo, l, opts, logger)
	renderer := pdf.NewRenderer(config.Booking.TicketQRSize)
	handler := adaptor.NewHandler(service, renderer, opts.Pricing.Places, logger)

	var limiter redis.Scripter
	if rdb != nil {
		limiter = rdb
	}

	router := setupRouter(handler, repo, db, limiter, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	db Pinger,
	limiter redis.Scripter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	guards := routeGuards{
		auth:    middleware.Auth(config.JWT.Secret, logger),
		admin:   middleware.Admin(repo.User, logger),
		role:    middleware.ResolveRole(repo.User, logger),
		limiter: limiter,
		config:  config,
		log:     logger,
	}

	// Apply routes
	wireHall(r, handler.Hall)
	wireSession(r, handler.Session, guards)
	wireTicket(r, handler.Ticket, guards)
	wireActivity(r, handler.Activity, guards)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			logger.Warn("Health check: database unreachable", zap.Error(err))
			utils.ResponseServiceUnavailable(w, "Database unreachable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

type routeGuards struct {
	auth    func(http.Handler) http.Handler
	admin   func(http.Handler) http.Handler
	role    func(http.Handler) http.Handler
	limiter redis.Scripter
	config  *utils.Config
	log     *zap.Logger
}

func (g routeGuards) rateLimit(scope string) func(http.Handler) http.Handler {
	return middleware.RateLimit(g.config.RateLimit, g.limiter, scope, g.log)
}
