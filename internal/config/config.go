package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go-simpler.org/env"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	AppEnv string `env:"APP_ENV" default:"development"`
	Port   string `env:"PORT" default:"5000"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBUser      string `env:"DB_USER"`
	DBPass      string `env:"DB_PASS"`
	DBHost      string `env:"DB_HOST" default:"localhost"`
	DBPort      string `env:"DB_PORT" default:"5432"`
	DBName      string `env:"DB_NAME" default:"job_portal"`
	DBSSLMode   string `env:"DB_SSLMODE" default:"disable"`
	StoreDriver string `env:"STORE_DRIVER" default:"postgres"`

	AccessJWTSecret string        `env:"ACCESS_JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" default:"10h"`
	CookieSecure    bool          `env:"COOKIE_SECURE" default:"false"`
	RedisURL        string        `env:"REDIS_URL"`

	CORSOrigins            string        `env:"CORS_ORIGINS" default:"http://localhost:5173"`
	TrustedProxies         string        `env:"TRUSTED_PROXIES"`
	AtomicApplicationCount bool          `env:"ATOMIC_APPLICATION_COUNT" default:"false"`
	RequestTimeout         time.Duration `env:"REQUEST_TIMEOUT" default:"15s"`
	JWTRateLimit           float64       `env:"JWT_RATE_LIMIT" default:"5"`
	JWTRateBurst           int           `env:"JWT_RATE_BURST" default:"10"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AccessJWTSecret == "" {
		return errors.New("ACCESS_JWT_SECRET is required")
	}
	if cfg.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if cfg.RequestTimeout < 0 {
		return errors.New("REQUEST_TIMEOUT must not be negative")
	}
	if cfg.JWTRateLimit <= 0 || cfg.JWTRateBurst <= 0 {
		return errors.New("JWT_RATE_LIMIT and JWT_RATE_BURST must be positive")
	}

	for _, proxy := range cfg.TrustedProxyList() {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES entry %q is not an IP or CIDR", proxy)
			}
		}
	}

	switch cfg.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" && cfg.DBUser == "" {
			return errors.New("DATABASE_URL or DB_USER is required for the postgres store")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, cfg.StoreDriver)
	}

	return nil
}

// DSN returns the postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPass),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSOrigins)
}

// TrustedProxyList splits TRUSTED_PROXIES on commas. Empty means the client
// address is always the TCP peer and forwarding headers are ignored.
func (c *Config) TrustedProxyList() []string {
	return splitList(c.TrustedProxies)
}

func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
