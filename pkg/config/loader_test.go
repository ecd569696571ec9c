package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muhammed2101812/Designer-tools-sub003/pkg/config"
)

type defaultedConfig struct {
	Name  string `env:"LOADER_TEST_NAME" envDefault:"billing"`
	Limit int    `env:"LOADER_TEST_LIMIT" envDefault:"10"`
}

type requiredConfig struct {
	Secret string `env:"LOADER_TEST_REQUIRED,required"`
}

type cachedConfig struct {
	Value string `env:"LOADER_TEST_CACHED" envDefault:"first"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultedConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "billing", cfg.Name)
	assert.Equal(t, 10, cfg.Limit)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("REQUIRED_OVERRIDE", "set")

	type overrideConfig struct {
		Value string `env:"REQUIRED_OVERRIDE" envDefault:"unset"`
	}
	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "set", cfg.Value)
}

func TestLoad_MissingRequired(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_CachesFirstParse(t *testing.T) {
	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	// The environment changing after the first parse does not matter; the
	// cached copy wins for the process lifetime.
	t.Setenv("LOADER_TEST_CACHED", "second")
	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[defaultedConfig](nil), config.ErrNilPointer)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	type mustConfig struct {
		Token string `env:"LOADER_TEST_MUST,required"`
	}
	assert.Panics(t, func() {
		var cfg mustConfig
		config.MustLoad(&cfg)
	})
}
