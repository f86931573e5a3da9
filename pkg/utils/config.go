package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	AMQP      AMQPConfig
	Booking   BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	MinConns int32
}

type JWTConfig struct {
	Secret string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled        bool
	Prefix         string
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

type AMQPConfig struct {
	URL   string
	Queue string
}

type BookingConfig struct {
	CancellationCutoff time.Duration
	DefaultRuntime     time.Duration
	CurrencyMinorUnits int32
	TicketQRSize       int
}

// LoadConfig reads .env (optional) and the process environment.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("APP_NAME", "cinema-ticketing")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_MIN_CONNS", 2)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_PREFIX", "rl")
	viper.SetDefault("RATE_LIMIT_CAPACITY", 20)
	viper.SetDefault("RATE_LIMIT_REFILL_TOKENS", 1)
	viper.SetDefault("RATE_LIMIT_REFILL_INTERVAL", "3s")
	viper.SetDefault("RATE_LIMIT_TTL", "10m")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_QUEUE", "booking.activity")
	viper.SetDefault("CANCELLATION_CUTOFF_MINUTES", 60)
	viper.SetDefault("SCHEDULE_DEFAULT_RUNTIME_MINUTES", 120)
	viper.SetDefault("CURRENCY_MINOR_UNITS", 2)
	viper.SetDefault("TICKET_QR_SIZE", 256)

	if err := viper.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
			MinConns: viper.GetInt32("DB_MIN_CONNS"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:        viper.GetBool("RATE_LIMIT_ENABLED"),
			Prefix:         viper.GetString("RATE_LIMIT_PREFIX"),
			Capacity:       viper.GetInt("RATE_LIMIT_CAPACITY"),
			RefillTokens:   viper.GetInt("RATE_LIMIT_REFILL_TOKENS"),
			RefillInterval: viper.GetDuration("RATE_LIMIT_REFILL_INTERVAL"),
			TTL:            viper.GetDuration("RATE_LIMIT_TTL"),
		},
		AMQP: AMQPConfig{
			URL:   viper.GetString("AMQP_URL"),
			Queue: viper.GetString("AMQP_QUEUE"),
		},
		Booking: BookingConfig{
			CancellationCutoff: time.Duration(viper.GetInt("CANCELLATION_CUTOFF_MINUTES")) * time.Minute,
			DefaultRuntime:     time.Duration(viper.GetInt("SCHEDULE_DEFAULT_RUNTIME_MINUTES")) * time.Minute,
			CurrencyMinorUnits: viper.GetInt32("CURRENCY_MINOR_UNITS"),
			TicketQRSize:       viper.GetInt("TICKET_QR_SIZE"),
		},
	}

	return config, nil
}
