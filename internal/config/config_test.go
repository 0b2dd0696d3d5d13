package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("PAYOUT_CHECK_INTERVAL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("MAIL_HOST", "")
	t.Setenv("KOMMO_API_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, time.Hour, cfg.PayoutCheckInterval)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.Mail.Enabled())
	assert.False(t, cfg.Kommo.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("PAYOUT_CHECK_INTERVAL", "15m")
	t.Setenv("CORS_ORIGINS", "https://parceiros.tillit.com.br, https://admin.tillit.com.br")
	t.Setenv("MAIL_PORT", "465")
	t.Setenv("KOMMO_STATUS_ID", "abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 15*time.Minute, cfg.PayoutCheckInterval)
	assert.Equal(t, []string{"https://parceiros.tillit.com.br", "https://admin.tillit.com.br"}, cfg.CORSOrigins)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.Equal(t, 0, cfg.Kommo.StatusID)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadProductionRules(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "curto")
	t.Setenv("DATABASE_URL", "postgres://localhost/parceiros")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "um-segredo-bem-comprido-com-mais-de-32-caracteres")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	assert.Error(t, err)
}
