package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin(t *testing.T) {
	c := Builtin()

	assert.NotEmpty(t, c.Cues())
	assert.NotEmpty(t, c.Sounds())

	for _, cue := range c.Cues() {
		assert.NotNil(t, cue.Sound, "cue %s has no sound", cue.ID)
		assert.Equal(t, SettingPrefix+"."+cue.ID, cue.SettingKey)
		assert.NotEqual(t, LegacyEnabledKey, cue.SettingKey)
		assert.NotEqual(t, VolumeKey, cue.SettingKey)
	}
}

func TestLookup(t *testing.T) {
	c := Builtin()

	cue, ok := c.Cue("task-completed")
	require.True(t, ok)
	assert.Equal(t, "Task Completed", cue.Name)

	snd, ok := c.Sound("complete")
	require.True(t, ok)
	assert.Equal(t, "complete.oga", snd.File)

	_, ok = c.Cue("nope")
	assert.False(t, ok)
	_, ok = c.Sound("nope")
	assert.False(t, ok)
}

func TestSharedSoundIdentity(t *testing.T) {
	c := Builtin()

	errCue, ok := c.Cue("error")
	require.True(t, ok)
	failedCue, ok := c.Cue("task-failed")
	require.True(t, ok)

	// Cues bound to the same sound id share one interned *Sound.
	assert.Same(t, errCue.Sound, failedCue.Sound)
}

func TestNew_PanicsOnBadDefinitions(t *testing.T) {
	sounds := []SoundDef{{ID: "ping", File: "ping.oga"}}

	tests := []struct {
		name   string
		sounds []SoundDef
		cues   []CueDef
	}{
		{
			name:   "duplicate sound id",
			sounds: []SoundDef{{ID: "ping", File: "a.oga"}, {ID: "ping", File: "b.oga"}},
		},
		{
			name:   "duplicate cue id",
			sounds: sounds,
			cues: []CueDef{
				{ID: "x", Name: "X", Sound: "ping"},
				{ID: "x", Name: "X2", Sound: "ping"},
			},
		},
		{
			name:   "unknown sound reference",
			sounds: sounds,
			cues:   []CueDef{{ID: "x", Name: "X", Sound: "missing"}},
		},
		{
			name:   "reserved cue id enabled",
			sounds: sounds,
			cues:   []CueDef{{ID: "enabled", Name: "Bad", Sound: "ping"}},
		},
		{
			name:   "reserved cue id volume",
			sounds: sounds,
			cues:   []CueDef{{ID: "volume", Name: "Bad", Sound: "ping"}},
		},
		{
			name:   "empty sound file",
			sounds: []SoundDef{{ID: "ping", File: ""}},
		},
		{
			name:   "dotted cue id",
			sounds: sounds,
			cues:   []CueDef{{ID: "a.b", Name: "Bad", Sound: "ping"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() {
				New(tt.sounds, tt.cues)
			})
		})
	}
}
