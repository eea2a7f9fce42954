package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"toy_store_backend/pkg/utils"

	"github.com/joho/godotenv"
)

const (
	StorageBackendPostgres = "postgres"
	StorageBackendMemory   = "memory"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MigrationsPath string
}

// ConnString renders a postgres:// URL for lib/pq. Credentials and the
// database name are escaped, so they may contain spaces or quotes.
func (d DatabaseConfig) ConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

type Config struct {
	Env            string
	Port           string
	StorageBackend string
	Database       DatabaseConfig

	JWTSecret       string
	JWTAccessTTL    time.Duration
	JWTRefreshTTL   time.Duration
	AllowedOrigins  []string
	DefaultPageSize int
	MaxPageSize     int

	LogLevel  string
	LogFormat string

	// Location decides which calendar day "today" is when stamping sale dates.
	Location *time.Location
}

// Load loads configuration from environment with sensible defaults.
// A .env file in the working directory is read first if present; real
// environment variables take precedence over it. The global logger is
// configured from LOG_LEVEL/LOG_FORMAT before anything else is read, so
// warnings about the remaining variables use the requested output.
func Load() (*Config, error) {
	_ = godotenv.Load()

	logLevel := utils.Getenv("LOG_LEVEL", "info")
	logFormat := utils.Getenv("LOG_FORMAT", "console")
	utils.InitLogger(logLevel, logFormat)

	cfg := &Config{
		Env:            utils.Getenv("APP_ENV", "development"),
		Port:           utils.Getenv("PORT", "8080"),
		StorageBackend: strings.ToLower(utils.Getenv("STORAGE_BACKEND", StorageBackendPostgres)),
		Database: DatabaseConfig{
			Host:           utils.Getenv("DB_HOST", "localhost"),
			Port:           utils.Getenv("DB_PORT", "5432"),
			User:           utils.Getenv("DB_USER", "toy_store_user"),
			Password:       utils.Getenv("DB_PASSWORD", "toy_store_password"),
			Name:           utils.Getenv("DB_NAME", "toy_store_db"),
			SSLMode:        utils.Getenv("DB_SSLMODE", "disable"),
			MigrationsPath: utils.Getenv("DB_MIGRATIONS_PATH", "migrations"),
		},
		JWTSecret:       utils.Getenv("JWT_SECRET", ""),
		JWTAccessTTL:    utils.GetenvDuration("JWT_ACCESS_TTL", 15*time.Minute),
		JWTRefreshTTL:   utils.GetenvDuration("JWT_REFRESH_TTL", 24*time.Hour),
		DefaultPageSize: utils.GetenvInt("PAGE_SIZE", 10),
		MaxPageSize:     utils.GetenvInt("MAX_PAGE_SIZE", 100),
		LogLevel:        logLevel,
		LogFormat:       logFormat,
	}

	origins := utils.Getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	loc, err := time.LoadLocation(utils.Getenv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if c.Env == "production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		c.JWTSecret = "dev-only-insecure-jwt-secret"
		utils.LogInfo("JWT_SECRET not set, using development secret", map[string]interface{}{"env": c.Env})
	}
	switch c.StorageBackend {
	case StorageBackendPostgres, StorageBackendMemory:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = 10
	}
	if c.MaxPageSize < c.DefaultPageSize {
		c.MaxPageSize = c.DefaultPageSize
	}
	return nil
}
