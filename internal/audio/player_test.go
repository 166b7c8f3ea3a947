package audio

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeGain(t *testing.T) {
	assert.InDelta(t, 0.0, volumeGain(1.0), 1e-9)
	assert.InDelta(t, -1.0, volumeGain(0.5), 1e-9)
	assert.InDelta(t, -2.0, volumeGain(0.25), 1e-9)
	assert.Less(t, volumeGain(0), -5.0)
}

func TestPlay_UnresolvableFile(t *testing.T) {
	p := NewPlayer(NewResolver(t.TempDir()), slog.New(slog.DiscardHandler))

	done, err := p.Play("missing.oga", 0.5)
	assert.Error(t, err)
	assert.Nil(t, done)
}

func TestPreload_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	p := NewPlayer(NewResolver(dir), slog.New(slog.DiscardHandler))

	// A present file with an unknown extension fails at decode selection.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.txt"), []byte("not audio"), 0644))

	err := p.Preload("note.txt")
	assert.ErrorContains(t, err, "unsupported audio format")
}
