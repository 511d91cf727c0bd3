package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.NotEmpty(t, cfg.Database.URL)
	assert.NotEmpty(t, cfg.Redis.URL)
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://other:5432/db")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres://other:5432/db", cfg.Database.URL)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.Origins)
}

func TestLoad_DBNameOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://admin:pw@localhost:5432/old?sslmode=disable")
	t.Setenv("DB_NAME", "floorplans")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://admin:pw@localhost:5432/floorplans?sslmode=disable", cfg.Database.URL)
}

func TestValidateCloudinary(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateCloudinary())

	cfg.Cloudinary.CloudName = "cloud"
	cfg.Cloudinary.APIKey = "key"
	assert.Error(t, cfg.ValidateCloudinary())

	cfg.Cloudinary.APISecret = "secret"
	assert.NoError(t, cfg.ValidateCloudinary())
}

func TestValidateLLM(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.ValidateLLM())

	cfg.LLM.APIKey = "key"
	assert.NoError(t, cfg.ValidateLLM())
}

func TestParseOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseOrigins(""))
	assert.Equal(t, []string{"*"}, parseOrigins(" , "))
	assert.Equal(t, []string{"https://a", "https://b"}, parseOrigins("https://a,https://b"))
}
