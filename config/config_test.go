package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiry(t *testing.T) {
	cases := map[string]time.Duration{
		"":     7 * 24 * time.Hour,
		"7d":   7 * 24 * time.Hour,
		"12h":  12 * time.Hour,
		"30m":  30 * time.Minute,
		"3600": time.Hour,
	}
	for in, want := range cases {
		got, err := ParseExpiry(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseExpiry("soon")
	assert.Error(t, err)
	_, err = ParseExpiry("xd")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ORIGIN", "http://a.pt,http://b.pt")
	t.Setenv("SMTP_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, []string{"http://a.pt", "http://b.pt"}, cfg.CORSOrigins)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiry())
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow())
	assert.Equal(t, 60*time.Second, cfg.ContactDedupeWindow)
	assert.False(t, cfg.SMTPEnabled())
	assert.False(t, cfg.CloudinaryEnabled())
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/ipss")

	_, err := Load()
	assert.Error(t, err)
}
