package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cinema-ticketing/internal/clock"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/ledger"
	"cinema-ticketing/internal/wire"
	"cinema-ticketing/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, logger, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer db.Close()

		logger.Info("Starting application",
			zap.String("app", config.App.Name),
			zap.String("port", config.App.Port),
			zap.Bool("debug", config.App.Debug),
		)

		// Initialize all repositories
		repos := repository.NewRepository(db, logger)

		sinks := []ledger.Sink{ledger.NewStoreSink(repos.Activity)}
		if config.AMQP.URL != "" {
			amqpSink, err := ledger.DialAMQPSink(config.AMQP.URL, config.AMQP.Queue)
			if err != nil {
				logger.Warn("RabbitMQ unavailable, activity goes to Postgres only", zap.Error(err))
			} else {
				defer amqpSink.Close()
				sinks = append(sinks, amqpSink)
				logger.Info("Publishing activity to RabbitMQ", zap.String("queue", config.AMQP.Queue))
			}
		}
		recorder := ledger.NewRecorder(logger, clock.System(), sinks...)

		rdb := connectRedis(config.Redis, logger)
		if rdb != nil {
			defer rdb.Close()
		}

		// Wire all dependencies
		app := wire.Wiring(repos, recorder, db, rdb, config, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return APIServer(ctx, app.Router, config.App.Port, logger)
	},
}

// connectRedis returns nil when Redis cannot be reached; rate limiting is then off.
func connectRedis(cfg utils.RedisConfig, logger *zap.Logger) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, rate limiting disabled",
			zap.String("addr", cfg.Addr),
			zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}
