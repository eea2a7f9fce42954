package config

import (
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfiguresLoggerBeforeReadingSettings(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PAGE_SIZE", "not-a-number")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10, cfg.DefaultPageSize)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")
	_, err := Load()
	assert.Error(t, err)
}

func TestConnStringEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		User:     "toy user",
		Password: `p@ss w'rd"=x`,
		Name:     "toy_store_db",
		SSLMode:  "require",
	}

	u, err := url.Parse(d.ConnString())
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.internal:5433", u.Host)
	assert.Equal(t, "/toy_store_db", u.Path)
	assert.Equal(t, "toy user", u.User.Username())
	pw, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, d.Password, pw)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}
