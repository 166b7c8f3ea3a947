// Package catalog defines the immutable registry of sounds and cues.
package catalog

import (
	"fmt"
	"strings"
)

// SettingPrefix is the settings section all cue keys live under.
const SettingPrefix = "cues"

// Reserved key names within the cues section that can never be cue ids.
const (
	LegacyEnabledKey = SettingPrefix + ".enabled"
	VolumeKey        = SettingPrefix + ".volume"
)

// Sound is a reusable audio asset. Sounds are interned at catalog build;
// two cues sharing a sound hold the same *Sound, and identity comparisons
// throughout the engine are pointer comparisons.
type Sound struct {
	// ID is the stable sound identifier, e.g. "error".
	ID string
	// File is the asset file name resolved by the audio layer,
	// e.g. "dialog-error.oga". May be an absolute path for overlay sounds.
	File string
}

// Cue is a named event that may trigger a sound.
type Cue struct {
	// ID is the stable cue identifier, e.g. "task-failed".
	ID string
	// Name is the human-readable display name.
	Name string
	// Sound is the bound audio asset.
	Sound *Sound
	// SettingKey is the per-cue settings key, "cues.<id>".
	SettingKey string
}

// Catalog is the read-only set of registered sounds and cues.
// Build it once at process start; it is safe for concurrent reads.
type Catalog struct {
	sounds   []*Sound
	cues     []*Cue
	soundIdx map[string]*Sound
	cueIdx   map[string]*Cue
}

// SoundDef and CueDef describe catalog entries before interning.
type SoundDef struct {
	ID   string
	File string
}

// CueDef binds a cue id to a registered sound id.
type CueDef struct {
	ID    string
	Name  string
	Sound string
}

// New interns the given definitions into a Catalog.
// Definition errors (duplicate ids, unknown sound references, reserved ids)
// are programmer errors and panic; they can only occur at process start.
func New(sounds []SoundDef, cues []CueDef) *Catalog {
	c := &Catalog{
		soundIdx: make(map[string]*Sound, len(sounds)),
		cueIdx:   make(map[string]*Cue, len(cues)),
	}
	for _, def := range sounds {
		if err := c.addSound(def); err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
	}
	for _, def := range cues {
		if err := c.addCue(def); err != nil {
			panic(fmt.Sprintf("catalog: %v", err))
		}
	}
	return c
}

func validID(id string) error {
	if id == "" {
		return fmt.Errorf("empty id")
	}
	if strings.ContainsAny(id, ". \t\n") {
		return fmt.Errorf("invalid id %q", id)
	}
	return nil
}

func (c *Catalog) addSound(def SoundDef) error {
	if err := validID(def.ID); err != nil {
		return err
	}
	if def.File == "" {
		return fmt.Errorf("sound %q: empty file", def.ID)
	}
	if _, exists := c.soundIdx[def.ID]; exists {
		return fmt.Errorf("duplicate sound id %q", def.ID)
	}
	s := &Sound{ID: def.ID, File: def.File}
	c.sounds = append(c.sounds, s)
	c.soundIdx[def.ID] = s
	return nil
}

func (c *Catalog) addCue(def CueDef) error {
	if err := validID(def.ID); err != nil {
		return err
	}
	key := SettingPrefix + "." + def.ID
	if key == LegacyEnabledKey || key == VolumeKey {
		return fmt.Errorf("cue id %q collides with a reserved setting", def.ID)
	}
	if _, exists := c.cueIdx[def.ID]; exists {
		return fmt.Errorf("duplicate cue id %q", def.ID)
	}
	snd, ok := c.soundIdx[def.Sound]
	if !ok {
		return fmt.Errorf("cue %q references unknown sound %q", def.ID, def.Sound)
	}
	cue := &Cue{
		ID:         def.ID,
		Name:       def.Name,
		Sound:      snd,
		SettingKey: key,
	}
	c.cues = append(c.cues, cue)
	c.cueIdx[def.ID] = cue
	return nil
}

// Cues returns all registered cues in registration order.
// Callers must not mutate the returned slice.
func (c *Catalog) Cues() []*Cue {
	return c.cues
}

// Sounds returns all registered sounds in registration order.
func (c *Catalog) Sounds() []*Sound {
	return c.sounds
}

// Cue looks up a cue by id.
func (c *Catalog) Cue(id string) (*Cue, bool) {
	cue, ok := c.cueIdx[id]
	return cue, ok
}

// Sound looks up a sound by id.
func (c *Catalog) Sound(id string) (*Sound, bool) {
	s, ok := c.soundIdx[id]
	return s, ok
}
