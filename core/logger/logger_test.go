package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Production JSON", func(t *testing.T) {
		l, err := New(&Config{Level: "info", Format: "json"})
		require.NoError(t, err)
		assert.NotNil(t, l)
		assert.False(t, l.Core().Enabled(-1), "debug should be disabled at info level")
	})

	t.Run("Debug Console", func(t *testing.T) {
		l, err := New(&Config{Level: "debug", Format: "console"})
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(-1))
	})

	t.Run("Warn Level", func(t *testing.T) {
		l, err := New(&Config{Level: "warn"})
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(0), "info should be disabled at warn level")
	})

	t.Run("Rotated File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "aggregator.log")
		l, err := New(&Config{Level: "info", File: path, MaxSizeMB: 1})
		require.NoError(t, err)

		l.Info("written to file")
		_ = l.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "written to file")
	})

	t.Run("Unusable Log Directory", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		_, err := New(&Config{Level: "info", File: filepath.Join(blocker, "logs", "aggregator.log")})
		assert.Error(t, err)
	})
}

func TestWithRunID(t *testing.T) {
	l, err := New(&Config{Level: "info"})
	require.NoError(t, err)

	assert.Same(t, l, WithRunID(l, ""))
	assert.NotSame(t, l, WithRunID(l, "abc"))
}
