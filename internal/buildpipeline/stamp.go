package buildpipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"rtbuild/internal/compose"
	"rtbuild/internal/toolchain"
)

// Current schema version - increment when Stamp format changes
const stampSchemaVersion uint16 = 1

const stampSuffix = ".stamp"

// ErrStampSchema reports a stamp written by an incompatible version.
var ErrStampSchema = errors.New("unsupported stamp schema")

// Stamp records how an archive was produced. It is informational; nothing
// reads it to skip work.
type Stamp struct {
	Schema      uint16
	Plan        compose.Plan
	Toolchain   toolchain.Toolchain
	Fingerprint string
	Objects     uint32
	BuiltAt     time.Time
	Elapsed     time.Duration
}

// NewStamp describes a finished build that started at started.
func NewStamp(plan compose.Plan, tc toolchain.Toolchain, objects int, started time.Time) (Stamp, error) {
	n, err := safecast.Conv[uint32](objects)
	if err != nil {
		return Stamp{}, fmt.Errorf("object count %d: %w", objects, err)
	}
	now := time.Now()
	return Stamp{
		Schema:      stampSchemaVersion,
		Plan:        plan,
		Toolchain:   tc,
		Fingerprint: plan.Fingerprint(),
		Objects:     n,
		BuiltAt:     now.UTC(),
		Elapsed:     now.Sub(started),
	}, nil
}

// StampPath returns the stamp location for an archive; stamp paths are
// returned unchanged.
func StampPath(p string) string {
	if strings.HasSuffix(p, stampSuffix) {
		return p
	}
	return p + stampSuffix
}

// WriteStamp encodes s to path, replacing any previous stamp atomically.
func WriteStamp(path string, s *Stamp) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "stamp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		_ = os.Remove(tmp)
	}()

	if err := msgpack.NewEncoder(f).Encode(s); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode stamp: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadStamp decodes the stamp at path, or next to the archive at path.
func ReadStamp(path string) (Stamp, error) {
	var s Stamp
	path = StampPath(path)
	// #nosec G304 -- path is chosen by the user
	f, err := os.Open(path)
	if err != nil {
		return s, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(&s); err != nil {
		return s, fmt.Errorf("%s: failed to decode stamp: %w", path, err)
	}
	if s.Schema != stampSchemaVersion {
		return s, fmt.Errorf("%s: %w %d (want %d)", path, ErrStampSchema, s.Schema, stampSchemaVersion)
	}
	return s, nil
}
