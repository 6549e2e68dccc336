package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/edgeworker/pkg/config"
)

type sampleConfig struct {
	Driver  string        `env:"DRIVER" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s" validate:"gt=0"`
	Name    string        `env:"NAME,required"`
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("defaults and values", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		err := config.Parse(&cfg, config.WithEnvironment(map[string]string{"NAME": "worker"}))
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Driver)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, "worker", cfg.Name)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		err := config.Parse(&cfg,
			config.WithPrefix("APP_"),
			config.WithEnvironment(map[string]string{"APP_NAME": "w", "APP_DRIVER": "postgres"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Driver)
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		err := config.Parse(&cfg, config.WithEnvironment(map[string]string{}))
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("validation failure", func(t *testing.T) {
		t.Parallel()
		var cfg sampleConfig
		err := config.Parse(&cfg, config.WithEnvironment(map[string]string{"NAME": "w", "DRIVER": "mysql"}))
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, config.Parse[sampleConfig](nil), config.ErrNilPointer)
	})
}

type cachedConfig struct {
	Value string `env:"EDGEWORKER_CONFIG_TEST_VALUE" envDefault:"first"`
}

func TestLoadCachesPerType(t *testing.T) {
	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("EDGEWORKER_CONFIG_TEST_VALUE", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value)
}
