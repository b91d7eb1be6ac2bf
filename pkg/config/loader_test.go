package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formfeedback/pkg/config"
)

type defaultsConfig struct {
	Str  string `env:"TEST_STRING_DEFAULT" envDefault:"default_value"`
	Num  int    `env:"TEST_INT_DEFAULT" envDefault:"42"`
	Flag bool   `env:"TEST_BOOL_DEFAULT" envDefault:"true"`
}

type successConfig struct {
	Str  string `env:"TEST_STRING_SUCCESS"`
	Num  int    `env:"TEST_INT_SUCCESS"`
	Flag bool   `env:"TEST_BOOL_SUCCESS"`
}

type cachedConfig struct {
	Str string `env:"TEST_STRING_CACHED" envDefault:"first"`
}

type requiredConfig struct {
	Required string `env:"TEST_REQUIRED_VALUE,required"`
}

type envFileConfig struct {
	Value  string `env:"TEST_ENVFILE_VALUE"`
	Preset string `env:"TEST_ENVFILE_PRESET"`
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "default_value", cfg.Str)
	assert.Equal(t, 42, cfg.Num)
	assert.True(t, cfg.Flag)
}

func TestLoad_Success(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_STRING_SUCCESS", "test_value")
	t.Setenv("TEST_INT_SUCCESS", "100")
	t.Setenv("TEST_BOOL_SUCCESS", "false")

	var cfg successConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "test_value", cfg.Str)
	assert.Equal(t, 100, cfg.Num)
	assert.False(t, cfg.Flag)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Str)

	t.Setenv("TEST_STRING_CACHED", "second")
	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Str)

	config.ResetCache()
	var third cachedConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second", third.Str)
}

func TestLoad_Errors(t *testing.T) {
	config.ResetCache()

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *requiredConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("missing required value", func(t *testing.T) {
		os.Unsetenv("TEST_REQUIRED_VALUE")
		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("retries after failure", func(t *testing.T) {
		t.Setenv("TEST_REQUIRED_VALUE", "present")
		var cfg requiredConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "present", cfg.Required)
	})

	t.Run("must load panics", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("TEST_REQUIRED_VALUE")
		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_ENVFILE_PRESET", "from-env")
	os.Unsetenv("TEST_ENVFILE_VALUE")
	t.Cleanup(func() { os.Unsetenv("TEST_ENVFILE_VALUE") })

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Value)
	assert.Equal(t, "from-env", cfg.Preset)

	assert.ErrorIs(t, config.LoadEnv("testdata/missing.env"), config.ErrLoadingEnvFile)
}
