package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFormConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := LoadFormConfig()

	assert.Equal(t, time.Second, cfg.SubmitDelay)
	assert.Equal(t, 30*time.Minute, cfg.DraftTTL)
	assert.Equal(t, 30*time.Second, cfg.LockTTL)
	assert.Equal(t, "USR-", cfg.IDPrefix)
}

func TestLoadFormConfig_LockOutlivesDelay(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("form.submit_delay", "40s")
	viper.Set("form.lock_ttl", "10s")

	cfg := LoadFormConfig()
	assert.Equal(t, 40*time.Second, cfg.SubmitDelay)
	assert.Equal(t, 45*time.Second, cfg.LockTTL)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := NewLogger("debug", format, "wastewise-test")
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}

func TestInit_EnvFileAndOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FORM_ID_PREFIX=WW-\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("FORM_SUBMIT_DELAY", "250ms")

	require.NoError(t, Init(path))

	assert.Equal(t, "WW-", viper.GetString("form.id_prefix"))
	assert.Equal(t, "warn", viper.GetString("log.level"), "environment wins over the file")
	assert.Equal(t, 250*time.Millisecond, LoadFormConfig().SubmitDelay)
}

func TestInit_MissingFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.NoError(t, Init(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadServerConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("PORT", "9090")
	require.NoError(t, Init(filepath.Join(t.TempDir(), "absent.env")))

	cfg := LoadServerConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://*", "http://*"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadServerConfig_TimeoutsFromEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("SERVER_WRITE_TIMEOUT", "20s")
	t.Setenv("SERVER_IDLE_TIMEOUT", "2m")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "45s")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "10s")
	require.NoError(t, Init(filepath.Join(t.TempDir(), "absent.env")))

	cfg := LoadServerConfig()
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 20*time.Second, cfg.WriteTimeout)
	assert.Equal(t, 2*time.Minute, cfg.IdleTimeout)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
