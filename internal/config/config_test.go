package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
story_file: routes.yaml
log_level: debug
playback:
  delay: 250ms
  wrap_width: 80
reports:
  backend: redis
  ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("STORYPATH_REDIS_ADDR", "redis:6380")
	t.Setenv("STORYPATH_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "routes.yaml", cfg.StoryFile)
	assert.Equal(t, "warn", cfg.LogLevel, "env overrides file")
	assert.Equal(t, 250*time.Millisecond, cfg.Playback.Delay)
	assert.Equal(t, 3*time.Second, cfg.Playback.InitialDelay, "untouched defaults survive")
	assert.Equal(t, 80, cfg.Playback.WrapWidth)
	assert.Equal(t, BackendRedis, cfg.Reports.Backend)
	assert.Equal(t, time.Hour, cfg.Reports.TTL)
	assert.Equal(t, "redis:6380", cfg.Reports.RedisAddr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "explicit file must exist")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reports:\n  backend: s3\n"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "unknown reports backend")
}

func TestReports_Keys(t *testing.T) {
	active, fallback, err := Reports{}.Keys()
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.Nil(t, fallback)

	key := base64.StdEncoding.EncodeToString(make([]byte, 32))
	t.Setenv("STORYPATH_REPORTS_KEY", key)
	t.Setenv("STORYPATH_REPORTS_FALLBACK_KEYS", key+","+key)
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	active, fallback, err = cfg.Reports.Keys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	assert.Len(t, fallback, 2)

	t.Setenv("STORYPATH_REPORTS_KEY", "c2hvcnQ=")
	_, err = Load("")
	assert.ErrorContains(t, err, "key must be 32 bytes")
}
