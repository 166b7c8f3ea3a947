// Package settings provides the live key-value settings store backing cue
// enablement and volume. Settings live in a TOML file under the XDG config
// directory; keys are flat "section.name" strings over the TOML tables.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/earcon/internal/observable"
)

// Change describes one settings reload; it carries the set of keys whose
// values differ from the previous state.
type Change struct {
	keys map[string]struct{}
}

// NewChange builds a change over the given keys. The store produces changes
// itself; this exists for code that re-fires or fakes them.
func NewChange(keys ...string) Change {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return Change{keys: set}
}

// Affects reports whether the change touched key.
func (c Change) Affects(key string) bool {
	_, ok := c.keys[key]
	return ok
}

// Keys returns the affected keys, sorted.
func (c Change) Keys() []string {
	out := make([]string, 0, len(c.keys))
	for k := range c.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Store holds the current settings values and notifies subscribers on
// reload. A read after a change notification always sees the post-change
// value: Reload swaps the value map before firing.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]any

	changed observable.Emitter[Change]
}

// Load reads the settings file at path, or returns an empty store if the
// file does not exist. An empty path uses the default settings path.
func Load(path string) (*Store, error) {
	if path == "" {
		path = Path()
	}
	s := &Store{path: path, values: map[string]any{}}

	values, err := readFile(path)
	if err != nil {
		return nil, err
	}
	s.values = values
	return s, nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	flat := make(map[string]any)
	flatten("", raw, flat)
	return flat, nil
}

// flatten joins nested TOML tables into dotted keys.
func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if table, ok := v.(map[string]any); ok {
			flatten(key, table, out)
			continue
		}
		out[key] = v
	}
}

// Path returns the settings file location.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "earcon", "settings.toml")
}

// OverlayPath returns the cue overlay file location next to the settings.
func OverlayPath() string {
	p := Path()
	if p == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(p), "cues.yaml")
}

// FilePath returns the path this store reads from.
func (s *Store) FilePath() string {
	return s.path
}

// Value returns the string value for key. Non-string values and missing
// keys report ok=false.
func (s *Store) Value(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Number returns the numeric value for key. Missing keys and values of any
// non-numeric type report ok=false.
func (s *Store) Number(key string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch v := s.values[key].(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// Set updates a value in memory and fires a change notification.
// Call Save to persist.
func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	s.changed.Fire(Change{keys: map[string]struct{}{key: {}}})
}

// OnDidChange subscribes fn to settings changes for the store's lifetime.
func (s *Store) OnDidChange(fn func(Change)) {
	s.changed.Subscribe(fn)
}

// Reload re-reads the settings file and notifies subscribers of every key
// whose value changed, was added, or was removed. No-op if nothing differs.
func (s *Store) Reload() error {
	next, err := readFile(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	diff := make(map[string]struct{})
	for k, v := range next {
		// DeepEqual because TOML arrays decode to non-comparable []any.
		if old, ok := s.values[k]; !ok || !reflect.DeepEqual(old, v) {
			diff[k] = struct{}{}
		}
	}
	for k := range s.values {
		if _, ok := next[k]; !ok {
			diff[k] = struct{}{}
		}
	}
	s.values = next
	s.mu.Unlock()

	if len(diff) > 0 {
		s.changed.Fire(Change{keys: diff})
	}
	return nil
}

// Save writes the current values back to the settings file as nested TOML
// tables, creating parent directories if needed.
func (s *Store) Save() error {
	s.mu.RLock()
	nested := unflatten(s.values)
	s.mu.RUnlock()

	data, err := toml.Marshal(nested)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// unflatten rebuilds nested tables from dotted keys.
func unflatten(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for key, v := range flat {
		parts := strings.Split(key, ".")
		node := out
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = v
	}
	return out
}
