package config_test

import (
	"testing"

	"pokedex-service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverridesAndDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("MONGO_URL", "mongodb://mongo.test:27017")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://mongo.test:27017", cfg.Mongo.URL)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "pokedex", cfg.Mongo.Database)
}
