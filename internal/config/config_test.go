package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_ReadsSecretFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SMTP_HOST", "smtp.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, 3000, cfg.Port)
}

func TestValidate_BlankSecret(t *testing.T) {
	assert.ErrorIs(t, (&Config{JWTSecret: "   "}).Validate(), ErrMissingJWTSecret)
	assert.NoError(t, (&Config{JWTSecret: "x"}).Validate())
}

func TestMaxUploadBytes_Default(t *testing.T) {
	assert.Equal(t, int64(10<<20), (&Config{}).MaxUploadBytes())
	assert.Equal(t, int64(2<<20), (&Config{MaxUploadMB: 2}).MaxUploadBytes())
}
