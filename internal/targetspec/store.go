package targetspec

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Store locates spec files in an ordered list of directories.
type Store struct {
	Dirs []string
}

// NewStore searches cwd first, then every entry of searchPath
// (a filepath.ListSeparator-joined list, as RUST_TARGET_PATH is).
func NewStore(cwd, searchPath string) *Store {
	dirs := []string{cwd}
	for _, dir := range filepath.SplitList(searchPath) {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return &Store{Dirs: dirs}
}

// FileName returns the spec file name for target.
func FileName(target string) string {
	return target + ".json"
}

// Lookup returns the first spec named after target along with its path.
// A missing file in every directory yields a nil Spec and no error; a file
// that exists but cannot be read or parsed is an error.
func (s *Store) Lookup(target string) (*Spec, string, error) {
	if s == nil {
		return nil, "", nil
	}
	for _, dir := range s.Dirs {
		candidate := filepath.Join(dir, FileName(target))
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		spec, err := ReadFile(candidate)
		if err != nil {
			return nil, "", err
		}
		return spec, candidate, nil
	}
	return nil, "", nil
}

// ReadFile reads and parses a single spec file.
func ReadFile(path string) (*Spec, error) {
	// #nosec G304 -- path comes from the configured search directories
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}
