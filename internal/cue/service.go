// Package cue implements the audio cue engine: reactive per-cue enablement
// over the settings store and screen-reader state, and de-duplicated,
// time-bounded sound playback.
package cue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/earcon/internal/catalog"
	"github.com/jmylchreest/earcon/internal/observable"
	"github.com/jmylchreest/earcon/internal/settings"
)

// DefaultPlayTimeout bounds how long a playback call waits for the sink.
// A cue that arrives late is more confusing than one that never plays, so
// the wait is abandoned; the sink is not stopped.
const DefaultPlayTimeout = 1000 * time.Millisecond

// DefaultVolumePercent is used when cues.volume is missing or non-numeric.
const DefaultVolumePercent = 50

// Sink is the audio output consumed by the service. Play starts playback of
// file at a linear volume (0.0 to 1.0) and returns a channel that closes on
// natural completion.
type Sink interface {
	Play(file string, volume float64) (<-chan struct{}, error)
}

// Settings is the configuration source consumed by the service.
// *settings.Store satisfies it.
type Settings interface {
	Value(key string) (string, bool)
	Number(key string) (float64, bool)
	OnDidChange(fn func(settings.Change))
}

// ScreenReader is the live accessibility signal consumed by the service.
type ScreenReader interface {
	Attached() bool
	OnDidChange(fn func())
}

// Service is the cue engine facade. Construction wires the enablement
// derivations to the settings and accessibility sources; it has no other
// side effects.
type Service struct {
	catalog      *catalog.Catalog
	settings     Settings
	screenReader ScreenReader
	sink         Sink
	logger       *slog.Logger

	playTimeout time.Duration

	// playing counts in-flight playbacks per sound; membership (count > 0)
	// is what the de-duplication check reads. The check and the increment
	// share one critical section, so no second call can slip in between.
	mu      sync.Mutex
	playing map[*catalog.Sound]int

	enablement *observable.Memo[*catalog.Cue, *observable.Derived[bool]]
}

// Option configures a Service.
type Option func(*Service)

// WithPlayTimeout overrides the playback wait bound.
func WithPlayTimeout(d time.Duration) Option {
	return func(s *Service) { s.playTimeout = d }
}

// NewService creates the cue engine over its collaborators.
func NewService(cat *catalog.Catalog, settings Settings, screenReader ScreenReader, sink Sink, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		catalog:      cat,
		settings:     settings,
		screenReader: screenReader,
		sink:         sink,
		logger:       logger,
		playTimeout:  DefaultPlayTimeout,
		playing:      make(map[*catalog.Sound]int),
		enablement:   observable.NewMemo[*catalog.Cue, *observable.Derived[bool]](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the service was built over.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Enabled returns the derived enablement observable for c. The derivation
// is created once per cue and shared by all callers; it is invalidated by
// changes to the cue's own setting, the legacy umbrella setting, and the
// screen-reader state, and recomputes lazily on the next read.
func (s *Service) Enabled(c *catalog.Cue) *observable.Derived[bool] {
	return s.enablement.Get(c, func() *observable.Derived[bool] {
		d := observable.NewDerived(func() bool {
			return s.computeEnabled(c)
		})
		s.settings.OnDidChange(func(ch settings.Change) {
			if ch.Affects(c.SettingKey) || ch.Affects(catalog.LegacyEnabledKey) {
				d.Invalidate()
			}
		})
		s.screenReader.OnDidChange(d.Invalidate)
		return d
	})
}

// IsEnabled reports whether c's sound currently plays when the cue fires.
func (s *Service) IsEnabled(c *catalog.Cue) bool {
	return s.Enabled(c).Get()
}

// volume resolves the configured playback volume as a linear 0.0-1.0 value.
func (s *Service) volume() float64 {
	percent, ok := s.settings.Number(catalog.VolumeKey)
	if !ok {
		percent = DefaultVolumePercent
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return percent / 100
}

// PlaySound plays snd at the configured volume. With allowConcurrent false,
// the call is a no-op while another playback of the same sound is in flight.
// The call returns on completion or after the playback timeout, whichever
// comes first; failures are logged and absorbed, never returned.
func (s *Service) PlaySound(ctx context.Context, snd *catalog.Sound, allowConcurrent bool) {
	s.mu.Lock()
	if !allowConcurrent && s.playing[snd] > 0 {
		s.mu.Unlock()
		s.logger.Debug("sound already playing, skipping", "sound", snd.ID)
		return
	}
	s.playing[snd]++
	s.mu.Unlock()

	id := ulid.Make()

	done, err := s.sink.Play(snd.File, s.volume())
	if err != nil {
		// A cue that cannot play must never break the feature that fired it.
		s.logger.Warn("cue playback failed", "sound", snd.ID, "playback", id, "error", err)
		s.release(snd)
		return
	}

	// Release tracks actual completion, even after the wait below gives up.
	go func() {
		<-done
		s.release(snd)
	}()

	select {
	case <-done:
	case <-time.After(s.playTimeout):
		s.logger.Debug("playback wait abandoned", "sound", snd.ID, "playback", id, "timeout", s.playTimeout)
	case <-ctx.Done():
	}
}

func (s *Service) release(snd *catalog.Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playing[snd] <= 1 {
		delete(s.playing, snd)
		return
	}
	s.playing[snd]--
}

// Playing reports whether a playback of snd is currently in flight.
func (s *Service) Playing(snd *catalog.Sound) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing[snd] > 0
}

// PlayCue plays c's sound if the cue is currently enabled.
func (s *Service) PlayCue(ctx context.Context, c *catalog.Cue, allowConcurrent bool) {
	if !s.IsEnabled(c) {
		s.logger.Debug("cue disabled, skipping", "cue", c.ID)
		return
	}
	s.PlaySound(ctx, c.Sound, allowConcurrent)
}

// PlayCues plays the distinct sounds of all enabled cues concurrently and
// waits for every playback to settle. Cues sharing a sound play it once.
func (s *Service) PlayCues(ctx context.Context, cues []*catalog.Cue) {
	seen := make(map[*catalog.Sound]struct{}, len(cues))
	var sounds []*catalog.Sound
	for _, c := range cues {
		if !s.IsEnabled(c) {
			continue
		}
		if _, dup := seen[c.Sound]; dup {
			continue
		}
		seen[c.Sound] = struct{}{}
		sounds = append(sounds, c.Sound)
	}

	var wg sync.WaitGroup
	for _, snd := range sounds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.PlaySound(ctx, snd, false)
		}()
	}
	wg.Wait()
}
