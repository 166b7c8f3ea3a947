package cue

import "github.com/jmylchreest/earcon/internal/catalog"

// Mode is the tri-state value a cue setting can hold.
type Mode int

const (
	// ModeAuto plays the cue only while a screen reader is attached.
	ModeAuto Mode = iota
	// ModeOn always plays the cue.
	ModeOn
	// ModeOff never plays the cue on its own tier.
	ModeOff
)

// String returns the settings-file representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeOn:
		return "on"
	case ModeOff:
		return "off"
	default:
		return "auto"
	}
}

// ParseMode maps a settings value to a Mode. Unrecognized or missing values
// fall back to auto rather than failing.
func ParseMode(s string) Mode {
	switch s {
	case "on":
		return ModeOn
	case "off":
		return ModeOff
	default:
		return ModeAuto
	}
}

// modeEnabled is the single-tier enablement rule.
func modeEnabled(m Mode, screenReader bool) bool {
	return m == ModeOn || (m == ModeAuto && screenReader)
}

// computeEnabled evaluates a cue's enablement from its current inputs.
// The per-cue tier is checked first; when it does not enable the cue, the
// deprecated umbrella setting is given the same chance, so users still on
// the old toggle keep their cues. Both tiers see the live screen-reader
// state.
func (s *Service) computeEnabled(c *catalog.Cue) bool {
	screenReader := s.screenReader.Attached()

	perCue := ModeAuto
	if v, ok := s.settings.Value(c.SettingKey); ok {
		perCue = ParseMode(v)
	}
	if modeEnabled(perCue, screenReader) {
		return true
	}

	legacy := ModeAuto
	if v, ok := s.settings.Value(catalog.LegacyEnabledKey); ok {
		legacy = ParseMode(v)
	}
	return modeEnabled(legacy, screenReader)
}
