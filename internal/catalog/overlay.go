package catalog

import (
	"errors"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay describes user-defined sounds and cues loaded from a YAML file.
// Overlay entries are appended to the built-in tables; they may reference
// built-in sounds but cannot redefine existing ids.
type Overlay struct {
	Sounds []OverlaySound `yaml:"sounds"`
	Cues   []OverlayCue   `yaml:"cues"`
}

// OverlaySound declares a user sound; File may be an absolute path,
// a ~-relative path, or a sound theme file name.
type OverlaySound struct {
	ID   string `yaml:"id"`
	File string `yaml:"file"`
}

// OverlayCue declares a user cue bound to a built-in or overlay sound.
type OverlayCue struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Sound string `yaml:"sound"`
}

// LoadOverlay reads an overlay file. A missing file yields an empty overlay.
func LoadOverlay(path string) (*Overlay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Overlay{}, nil
		}
		return nil, err
	}
	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// BuiltinWith builds the catalog from the built-in tables plus an overlay.
// Unlike the built-in tables, overlay entries come from user input: invalid
// entries are skipped with a warning instead of panicking.
func BuiltinWith(o *Overlay, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}

	c := New(builtinSounds, builtinCues)
	if o == nil {
		return c
	}

	for _, s := range o.Sounds {
		if err := c.addSound(SoundDef{ID: s.ID, File: s.File}); err != nil {
			logger.Warn("skipping overlay sound", "id", s.ID, "error", err)
		}
	}
	for _, cue := range o.Cues {
		name := cue.Name
		if name == "" {
			name = cue.ID
		}
		if err := c.addCue(CueDef{ID: cue.ID, Name: name, Sound: cue.Sound}); err != nil {
			logger.Warn("skipping overlay cue", "id", cue.ID, "error", err)
		}
	}
	return c
}
