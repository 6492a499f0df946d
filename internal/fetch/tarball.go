package fetch

import (
	"archive/tar"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Tarball downloads a .tar.gz snapshot and unpacks it, dropping the single
// top-level directory that forge archives wrap their contents in.
type Tarball struct {
	URL    string
	Client *http.Client
}

// Describe implements Fetcher.
func (t *Tarball) Describe() string {
	return "tarball " + t.URL
}

// Fetch implements Fetcher.
func (t *Tarball) Fetch(ctx context.Context, dest string) error {
	if t.URL == "" {
		return fmt.Errorf("tarball fetch: empty URL")
	}
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL, nil)
	if err != nil {
		return fmt.Errorf("tarball fetch: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("tarball fetch %s: %w", t.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tarball fetch %s: unexpected status %s", t.URL, resp.Status)
	}
	if err := Extract(resp.Body, dest); err != nil {
		return fmt.Errorf("tarball fetch %s: %w", t.URL, err)
	}
	return nil
}

// Extract unpacks a gzip-compressed tar stream into dest, stripping the
// first path component of every entry.
func Extract(r io.Reader, dest string) error {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()

	if err := os.MkdirAll(dest, 0o750); err != nil {
		return err
	}
	tr := tar.NewReader(zr)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tar: %w", err)
		}
		rel := stripFirst(hdr.Name)
		if rel == "" {
			continue
		}
		target, err := safeJoin(dest, rel)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o750); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			// links and devices are not part of the builtins sources
		}
	}
}

func stripFirst(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	idx := strings.IndexByte(name, '/')
	if idx < 0 {
		return ""
	}
	return strings.TrimSuffix(name[idx+1:], "/")
}

func safeJoin(dest, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, rel)
	}
	target := filepath.Join(dest, filepath.FromSlash(rel))
	back, err := filepath.Rel(dest, target)
	if err != nil || back == ".." || strings.HasPrefix(back, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, rel)
	}
	return target, nil
}

func writeFile(path string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o600
	}
	// #nosec G304 -- path was checked by safeJoin
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
