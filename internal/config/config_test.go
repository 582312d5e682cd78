package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)

	// Defaults
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "doctors_portal", cfg.Mongo.Database)
	assert.Equal(t, 60, cfg.JWT.ExpiryMinutes)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
