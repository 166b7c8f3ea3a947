package settings

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cues]\nerror = \"off\"\n"), 0644))

	s, err := Load(path)
	require.NoError(t, err)

	var mu sync.Mutex
	affected := false
	s.OnDidChange(func(c Change) {
		mu.Lock()
		defer mu.Unlock()
		if c.Affects("cues.error") {
			affected = true
		}
	})

	w, err := NewWatcher(s, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(path, []byte("[cues]\nerror = \"on\"\n"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return affected
	}, 5*time.Second, 10*time.Millisecond)

	v, ok := s.Value("cues.error")
	require.True(t, ok)
	assert.Equal(t, "on", v)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.toml"))
	require.NoError(t, err)

	w, err := NewWatcher(s, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	require.NoError(t, w.Start())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
