package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultDSN         = "host=localhost user=postgres password=postgres dbname=delivery port=5432 sslmode=disable"
	defaultCORSOrigins = "http://localhost:3000"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string
	LogLevel    string
	Location    *time.Location

	RedisURL          string
	DashboardCacheTTL time.Duration

	StorageDriver    string // local | s3
	StoragePath      string
	StoragePublicURL string
	S3Endpoint       string
	S3AccessKey      string
	S3SecretKey      string
	S3UseSSL         bool

	AMQPURL        string
	EventsExchange string
}

// Read loads .env (when present) and the process environment.
func Read() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read .env: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DATABASE_DSN", defaultDSN)
	v.SetDefault("CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("TIMEZONE", "UTC")
	v.SetDefault("REDIS_URL", "redis://localhost:6379")
	v.SetDefault("DASHBOARD_CACHE_TTL", 60)
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_PATH", "./storage")
	v.SetDefault("EVENTS_EXCHANGE", "delivery-admin.events")

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg := &Config{
		HTTPPort:          v.GetString("HTTP_PORT"),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		CORSOrigins:       v.GetString("CORS_ALLOWED_ORIGINS"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		Location:          loc,
		RedisURL:          v.GetString("REDIS_URL"),
		DashboardCacheTTL: time.Duration(v.GetInt("DASHBOARD_CACHE_TTL")) * time.Second,
		StorageDriver:     strings.ToLower(v.GetString("STORAGE_DRIVER")),
		StoragePath:       v.GetString("STORAGE_PATH"),
		StoragePublicURL:  v.GetString("STORAGE_PUBLIC_URL"),
		S3Endpoint:        v.GetString("S3_ENDPOINT"),
		S3AccessKey:       v.GetString("S3_ACCESS_KEY"),
		S3SecretKey:       v.GetString("S3_SECRET_KEY"),
		S3UseSSL:          v.GetBool("S3_USE_SSL"),
		AMQPURL:           v.GetString("AMQP_URL"),
		EventsExchange:    v.GetString("EVENTS_EXCHANGE"),
	}

	if cfg.StoragePublicURL == "" {
		cfg.StoragePublicURL = "http://localhost:" + cfg.HTTPPort + "/storage"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	switch c.StorageDriver {
	case "local":
	case "s3":
		if c.S3Endpoint == "" || c.S3AccessKey == "" || c.S3SecretKey == "" {
			return errors.New("STORAGE_DRIVER=s3 requires S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

// Load is Read for main: configuration errors are fatal.
func Load() *Config {
	cfg, err := Read()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres connection for production.")
	}
	if cfg.CORSOrigins == defaultCORSOrigins {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value, set your dashboard domain for production.")
	}
	if cfg.AMQPURL == "" {
		log.Println("[WARN] AMQP_URL is empty, domain events will not be published.")
	}

	return cfg
}

// Origins splits CORSOrigins and trims each entry.
func (c *Config) Origins() []string {
	origins := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// TZ returns the configured location, UTC when none was loaded.
func (c *Config) TZ() *time.Location {
	if c == nil || c.Location == nil {
		return time.UTC
	}
	return c.Location
}
