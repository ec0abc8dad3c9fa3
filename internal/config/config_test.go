package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "15")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x?sslmode=disable")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, 15, cfg.AccessTokenTTLMin)
	assert.Equal(t, "postgres://u:p@db:5432/x?sslmode=disable", cfg.DatabaseURL)
}

func TestLoad_DSNFromParts(t *testing.T) {
	t.Setenv("DB_HOST", "dbhost")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "accounts")
	// t.Setenv registers the restore; the variable itself must be absent so
	// the DSN gets composed from the parts.
	t.Setenv("DATABASE_URL", "ignored")
	os.Unsetenv("DATABASE_URL")

	cfg := Load()

	assert.Equal(t, "postgres://app:pw@dbhost:5433/accounts?sslmode=disable", cfg.DatabaseURL)
}

func TestLoad_BadTTLFallsBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "not-a-number")

	cfg := Load()

	assert.Equal(t, 30, cfg.AccessTokenTTLMin)
}
