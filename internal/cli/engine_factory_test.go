package cli

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/storypath/internal/config"
	"github.com/aretw0/storypath/internal/logging"
	"github.com/aretw0/storypath/pkg/adapters/file"
	"github.com/aretw0/storypath/pkg/adapters/memory"
	"github.com/aretw0/storypath/pkg/adapters/redis"
	"github.com/aretw0/storypath/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEngine(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	t.Run("Error without fallback", func(t *testing.T) {
		_, err := CreateEngine(config.Default(), EngineOptions{StoryFile: missing}, logging.NewNop())
		assert.Error(t, err)
	})

	t.Run("Fallback story", func(t *testing.T) {
		engine, err := CreateEngine(config.Default(), EngineOptions{StoryFile: missing, Fallback: true, Debug: true}, logging.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "Fallback Story", engine.Story().Title())

		res, err := engine.FindOptimalPath(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeFound, res.Outcome())
	})
}

func TestCreateReportStore(t *testing.T) {
	t.Run("Memory", func(t *testing.T) {
		store, closeFn, err := CreateReportStore(config.Reports{Backend: config.BackendMemory})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &memory.Store{}, store)
	})

	t.Run("File", func(t *testing.T) {
		store, closeFn, err := CreateReportStore(config.Reports{Backend: config.BackendFile, Dir: t.TempDir()})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &file.Store{}, store)
	})

	t.Run("Redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, closeFn, err := CreateReportStore(config.Reports{Backend: config.BackendRedis, RedisAddr: mr.Addr()})
		require.NoError(t, err)
		defer closeFn()
		assert.IsType(t, &redis.Store{}, store)

		ids, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("Encrypted", func(t *testing.T) {
		key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
		store, closeFn, err := CreateReportStore(config.Reports{Backend: config.BackendFile, Dir: t.TempDir(), EncryptionKey: key})
		require.NoError(t, err)
		defer closeFn()
		assert.NotEqual(t, "*file.Store", fmt.Sprintf("%T", store))

		report := &domain.Report{ID: "r1", Story: "Routes"}
		require.NoError(t, store.Save(context.Background(), report))
		loaded, err := store.Load(context.Background(), "r1")
		require.NoError(t, err)
		assert.Equal(t, "Routes", loaded.Story)
	})

	t.Run("Bad Key", func(t *testing.T) {
		_, _, err := CreateReportStore(config.Reports{Backend: config.BackendMemory, EncryptionKey: "c2hvcnQ="})
		assert.Error(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		_, _, err := CreateReportStore(config.Reports{Backend: "s3"})
		assert.Error(t, err)
	})
}
