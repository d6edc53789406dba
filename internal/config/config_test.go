package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "UTC", cfg.DefaultTimezone)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("SERVER_PORT", "8080")

	cfg := Load()

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Contains(t, cfg.DSN(), "host=db.internal")
	assert.Contains(t, cfg.DSN(), "port=5433")
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
}
