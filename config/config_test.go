package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_JOBS", "4")
	t.Setenv("DATA_DIR", "/srv/framer")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8082, cfg.Port)
	assert.Equal(t, 4, cfg.MaxConcurrentJobs)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JobTTL)
	assert.Equal(t, time.Second, cfg.PollInterval)
	assert.Equal(t, 250*time.Millisecond, cfg.DequeueTimeout)
	assert.Equal(t, 30*time.Minute, cfg.JobTimeout)
	assert.Equal(t, 1, cfg.FrameRate)
	assert.Equal(t, filepath.Join("/srv/framer", "uploads"), cfg.UploadsDir)
	assert.Equal(t, filepath.Join("/srv/framer", "processing"), cfg.TempDir)
	assert.Equal(t, filepath.Join("/srv/framer", "outputs"), cfg.OutputDir)
	assert.Empty(t, cfg.NotificationURL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownGrace)
	assert.Equal(t, 60, cfg.SubmitRateLimit)
}

func TestLoad_RequiresConcurrencyLimit(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_JOBS", "")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "MAX_CONCURRENT_JOBS is required")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  string
		errMsg string
	}{
		{name: "port", key: "PORT", value: "http", errMsg: "invalid PORT"},
		{name: "zero concurrency", key: "MAX_CONCURRENT_JOBS", value: "0", errMsg: "invalid MAX_CONCURRENT_JOBS"},
		{name: "frame rate", key: "FRAME_RATE", value: "0", errMsg: "invalid FRAME_RATE"},
		{name: "ttl", key: "JOB_TTL", value: "forever", errMsg: "invalid JOB_TTL"},
		{name: "negative timeout", key: "JOB_TIMEOUT", value: "-1s", errMsg: "invalid JOB_TIMEOUT"},
		{name: "zero poll interval", key: "POLL_INTERVAL", value: "0s", errMsg: "invalid POLL_INTERVAL"},
		{name: "negative rate limit", key: "SUBMIT_RATE_LIMIT", value: "-1", errMsg: "invalid SUBMIT_RATE_LIMIT"},
		{name: "driver", key: "STORE_DRIVER", value: "mongo", errMsg: "invalid STORE_DRIVER"},
		{name: "postgres without url", key: "STORE_DRIVER", value: "postgres", errMsg: "DATABASE_URL is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MAX_CONCURRENT_JOBS", "2")
			t.Setenv("DATABASE_URL", "")
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("MAX_CONCURRENT_JOBS", "8")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("POLL_INTERVAL", "500ms")
	t.Setenv("FRAME_RATE", "2")
	t.Setenv("NOTIFICATION_URL", "http://notify:8084")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, ,https://admin.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.StoreDriver)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
	assert.Equal(t, 2, cfg.FrameRate)
	assert.Equal(t, "http://notify:8084", cfg.NotificationURL)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_DotEnvFiles(t *testing.T) {
	t.Run("local file wins over .env", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9000\nFRAME_RATE=3\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("PORT=9100\n"), 0o600))
		t.Chdir(dir)
		t.Setenv("MAX_CONCURRENT_JOBS", "2")
		unsetEnv(t, "PORT")
		unsetEnv(t, "FRAME_RATE")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 9100, cfg.Port)
		assert.Equal(t, 3, cfg.FrameRate)
	})

	t.Run("missing .env does not skip the local file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("FRAME_RATE=5\n"), 0o600))
		t.Chdir(dir)
		t.Setenv("MAX_CONCURRENT_JOBS", "2")
		unsetEnv(t, "FRAME_RATE")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 5, cfg.FrameRate)
	})

	t.Run("environment wins over both files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9000\n"), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("PORT=9100\n"), 0o600))
		t.Chdir(dir)
		t.Setenv("MAX_CONCURRENT_JOBS", "2")
		t.Setenv("PORT", "8085")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 8085, cfg.Port)
	})
}
