package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

type Settings struct {
	Server   ServerSettings   `yaml:"server"`
	Database DatabaseSettings `yaml:"database"`
	Pricing  PricingSettings  `yaml:"pricing"`
	Booking  BookingSettings  `yaml:"booking"`
	Redis    RedisSettings    `yaml:"redis"`
	Logging  LoggingSettings  `yaml:"logging"`
}

type ServerSettings struct {
	Port           string        `yaml:"port"`
	CORSOrigins    []string      `yaml:"cors_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type DatabaseSettings struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	Seed            bool          `yaml:"seed"`
	LogLevel        string        `yaml:"log_level"`
}

type PricingSettings struct {
	SeasonMarkups map[string]string `yaml:"season_markups"`
}

type BookingSettings struct {
	RetryAttempts    int           `yaml:"retry_attempts"`
	RetryBackoff     time.Duration `yaml:"retry_backoff"`
	CleaningInterval time.Duration `yaml:"cleaning_interval"`
	EmailEnabled     bool          `yaml:"email_enabled"`
}

type RedisSettings struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	ListKey  string `yaml:"list_key"`
}

type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Defaults() Settings {
	return Settings{
		Server: ServerSettings{
			Port:           "8080",
			CORSOrigins:    []string{"*"},
			RequestTimeout: 10 * time.Second,
		},
		Database: DatabaseSettings{
			Driver:          DriverMySQL,
			MaxOpenConns:    20,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
			Seed:            true,
			LogLevel:        "warn",
		},
		Booking: BookingSettings{
			RetryAttempts:    services.DefaultRetryPolicy().Attempts,
			RetryBackoff:     services.DefaultRetryPolicy().Backoff,
			CleaningInterval: services.DefaultCleaningInterval,
		},
		Redis: RedisSettings{
			ListKey: services.DefaultConfirmationQueue,
		},
		Logging: LoggingSettings{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads .env, then the YAML file at path, then environment overrides.
// Missing .env or config files are not an error.
func Load(path string) (*Settings, error) {
	_ = godotenv.Load()

	s := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			expanded := []byte(os.ExpandEnv(string(data)))
			if err := yaml.Unmarshal(expanded, &s); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	s.applyEnv()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) applyEnv() {
	s.Server.Port = utils.EnvOrDefault("PORT", s.Server.Port)
	if origins := utils.SplitCSV(os.Getenv("CORS_ORIGINS")); len(origins) > 0 {
		s.Server.CORSOrigins = origins
	}
	s.Server.RequestTimeout = utils.EnvDurationOrDefault("REQUEST_TIMEOUT", s.Server.RequestTimeout)

	s.Database.Driver = strings.ToLower(utils.EnvOrDefault("STORAGE_DRIVER", s.Database.Driver))
	s.Database.Seed = utils.EnvBoolOrDefault("DB_SEED", s.Database.Seed)
	s.Database.LogLevel = utils.EnvOrDefault("DB_LOG_LEVEL", s.Database.LogLevel)

	s.Booking.RetryAttempts = utils.EnvIntOrDefault("BOOKING_RETRY_ATTEMPTS", s.Booking.RetryAttempts)
	s.Booking.RetryBackoff = utils.EnvDurationOrDefault("BOOKING_RETRY_BACKOFF", s.Booking.RetryBackoff)
	s.Booking.CleaningInterval = utils.EnvDurationOrDefault("CLEANING_INTERVAL", s.Booking.CleaningInterval)
	s.Booking.EmailEnabled = utils.EnvBoolOrDefault("BOOKING_EMAIL_ENABLED", s.Booking.EmailEnabled)

	s.Redis.Address = utils.EnvOrDefault("REDIS_ADDR", s.Redis.Address)
	s.Redis.Password = utils.EnvOrDefault("REDIS_PASSWORD", s.Redis.Password)
	s.Redis.DB = utils.EnvIntOrDefault("REDIS_DB", s.Redis.DB)
	s.Redis.ListKey = utils.EnvOrDefault("REDIS_LIST_KEY", s.Redis.ListKey)

	s.Logging.Level = utils.EnvOrDefault("LOG_LEVEL", s.Logging.Level)
	s.Logging.Format = utils.EnvOrDefault("LOG_FORMAT", s.Logging.Format)
}

func (s *Settings) Validate() error {
	switch s.Database.Driver {
	case DriverMySQL, DriverMemory:
	default:
		return fmt.Errorf("unsupported storage driver %q", s.Database.Driver)
	}
	if s.Booking.RetryAttempts < 1 {
		return fmt.Errorf("booking.retry_attempts must be at least 1, got %d", s.Booking.RetryAttempts)
	}
	if s.Booking.RetryBackoff < 0 {
		return errors.New("booking.retry_backoff must not be negative")
	}
	if s.Server.RequestTimeout < 0 {
		return errors.New("server.request_timeout must not be negative")
	}
	if _, err := s.SeasonTable(); err != nil {
		return fmt.Errorf("pricing.season_markups: %w", err)
	}
	return nil
}

func (s *Settings) SeasonTable() (services.SeasonTable, error) {
	return services.ParseSeasonTable(s.Pricing.SeasonMarkups)
}

func (s *Settings) RetryPolicy() services.RetryPolicy {
	return services.RetryPolicy{Attempts: s.Booking.RetryAttempts, Backoff: s.Booking.RetryBackoff}
}
