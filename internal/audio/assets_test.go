package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_SearchOrder(t *testing.T) {
	userDir := t.TempDir()
	themeDir := t.TempDir()

	// The same file name in both dirs: the user dir wins.
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "bell.oga"), []byte("user"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(themeDir, "bell.oga"), []byte("theme"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(themeDir, "complete.oga"), []byte("theme"), 0644))

	r := NewResolver(userDir, themeDir)

	path, err := r.Resolve("bell.oga")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(userDir, "bell.oga"), path)

	path, err = r.Resolve("complete.oga")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(themeDir, "complete.oga"), path)
}

func TestResolver_AbsolutePath(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "custom.wav")
	require.NoError(t, os.WriteFile(abs, []byte("x"), 0644))

	r := NewResolver(t.TempDir())

	path, err := r.Resolve(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, path)

	_, err = r.Resolve(filepath.Join(dir, "missing.wav"))
	assert.Error(t, err)
}

func TestResolver_NotFound(t *testing.T) {
	r := NewResolver(t.TempDir())

	_, err := r.Resolve("no-such-sound.oga")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-sound.oga")
}

func TestDefaultSoundDirs(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")

	dirs := DefaultSoundDirs()
	require.NotEmpty(t, dirs)
	assert.Equal(t, "/custom/data/earcon/sounds", dirs[0])
	assert.Contains(t, dirs, "/usr/share/sounds/freedesktop/stereo")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "sounds", "x.oga"), expandPath("~/sounds/x.oga"))
	assert.Equal(t, "/abs/x.oga", expandPath("/abs/x.oga"))
	assert.Equal(t, "plain.oga", expandPath("plain.oga"))
}
