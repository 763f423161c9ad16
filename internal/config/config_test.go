package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SIGNING_KEY", "test-secret")

	cfg := Load()

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, "test-secret", cfg.SigningKey)
	assert.Equal(t, 24*time.Hour, cfg.ActivationTTL)
	assert.Equal(t, "http://localhost:3000", cfg.FrontendDomain)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.True(t, cfg.SMTP.TLS)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SIGNING_KEY", "test-secret")
	t.Setenv("ADDR", ":9000")
	t.Setenv("ACTIVATION_TTL", "30m")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_TLS", "false")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, https://admin.example.com")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 30*time.Minute, cfg.ActivationTTL)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.False(t, cfg.SMTP.TLS)
	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SIGNING_KEY", "test-secret")
	t.Setenv("ACTIVATION_TTL", "not-a-duration")
	t.Setenv("SMTP_PORT", "not-a-port")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.ActivationTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
}
