package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLoadOverlay_MissingFile(t *testing.T) {
	o, err := LoadOverlay(filepath.Join(t.TempDir(), "cues.yaml"))
	require.NoError(t, err)
	assert.Empty(t, o.Sounds)
	assert.Empty(t, o.Cues)
}

func TestLoadOverlay_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cues.yaml")

	content := `
sounds:
  - id: ping
    file: /opt/sounds/ping.ogg
cues:
  - id: build-finished
    name: Build Finished
    sound: ping
  - id: quiet-cue
    sound: bell
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	o, err := LoadOverlay(path)
	require.NoError(t, err)
	require.Len(t, o.Sounds, 1)
	require.Len(t, o.Cues, 2)
	assert.Equal(t, "ping", o.Sounds[0].ID)
	assert.Equal(t, "/opt/sounds/ping.ogg", o.Sounds[0].File)
}

func TestLoadOverlay_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cues.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cues: {not a list"), 0644))

	_, err := LoadOverlay(path)
	assert.Error(t, err)
}

func TestBuiltinWith(t *testing.T) {
	o := &Overlay{
		Sounds: []OverlaySound{{ID: "ping", File: "/opt/sounds/ping.ogg"}},
		Cues: []OverlayCue{
			{ID: "build-finished", Name: "Build Finished", Sound: "ping"},
			{ID: "reuses-builtin", Sound: "bell"},
		},
	}

	c := BuiltinWith(o, discardLogger())

	cue, ok := c.Cue("build-finished")
	require.True(t, ok)
	assert.Equal(t, "Build Finished", cue.Name)
	assert.Equal(t, "/opt/sounds/ping.ogg", cue.Sound.File)
	assert.Equal(t, "cues.build-finished", cue.SettingKey)

	// Name defaults to the id, and built-in sounds are referenceable.
	reuse, ok := c.Cue("reuses-builtin")
	require.True(t, ok)
	assert.Equal(t, "reuses-builtin", reuse.Name)
	builtinBell, ok := c.Sound("bell")
	require.True(t, ok)
	assert.Same(t, builtinBell, reuse.Sound)
}

func TestBuiltinWith_SkipsInvalidEntries(t *testing.T) {
	o := &Overlay{
		Sounds: []OverlaySound{
			{ID: "error", File: "clash.oga"}, // collides with built-in
			{ID: "", File: "x.oga"},
		},
		Cues: []OverlayCue{
			{ID: "enabled", Sound: "bell"},  // reserved id
			{ID: "orphan", Sound: "no-such"},
			{ID: "good", Sound: "bell"},
		},
	}

	c := BuiltinWith(o, discardLogger())

	// Built-in error sound untouched
	snd, ok := c.Sound("error")
	require.True(t, ok)
	assert.Equal(t, "dialog-error.oga", snd.File)

	_, ok = c.Cue("orphan")
	assert.False(t, ok)
	_, ok = c.Cue("good")
	assert.True(t, ok)

	assert.Len(t, c.Cues(), len(Builtin().Cues())+1)
}
