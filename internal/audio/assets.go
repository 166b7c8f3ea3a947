package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolver maps a sound's file name to a playable path. Bare file names are
// searched in the user sound directory first, then the freedesktop sound
// theme; absolute and ~-relative paths pass through.
type Resolver struct {
	dirs []string
}

// DefaultSoundDirs returns the search path for bare sound file names.
func DefaultSoundDirs() []string {
	var dirs []string

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "earcon", "sounds"))
	}

	dirs = append(dirs,
		"/usr/share/sounds/freedesktop/stereo",
		"/usr/local/share/sounds/freedesktop/stereo",
	)
	return dirs
}

// NewResolver creates a resolver over the given search directories,
// or the defaults if none are given.
func NewResolver(dirs ...string) *Resolver {
	if len(dirs) == 0 {
		dirs = DefaultSoundDirs()
	}
	return &Resolver{dirs: dirs}
}

// Resolve returns the on-disk path for file.
func (r *Resolver) Resolve(file string) (string, error) {
	file = expandPath(file)

	if filepath.IsAbs(file) {
		if _, err := os.Stat(file); err != nil {
			return "", err
		}
		return file, nil
	}

	for _, dir := range r.dirs {
		candidate := filepath.Join(dir, file)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("sound file %q not found in %v", file, r.dirs)
}

// expandPath expands ~ to the home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
