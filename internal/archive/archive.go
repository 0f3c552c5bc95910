// Package archive keeps a copy of every uploaded chat export on disk.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vdavid/chatlens/internal/crypto"
)

// sealedSuffix marks files written through an Encryptor.
const sealedSuffix = ".sealed"

// Archive writes raw exports into a directory, sealing them when an
// Encryptor is configured.
type Archive struct {
	dir       string
	encryptor *crypto.Encryptor
	now       func() time.Time
}

// New creates the archive directory if needed. encryptor may be nil.
func New(dir string, encryptor *crypto.Encryptor) (*Archive, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &Archive{dir: dir, encryptor: encryptor, now: time.Now}, nil
}

// Save stores data under a timestamped, sanitized version of filename and
// returns the path written.
func (a *Archive) Save(filename string, data []byte) (string, error) {
	name := a.now().UTC().Format("20060102T150405.000000000") + "-" + SanitizeFilename(filename)

	if a.encryptor != nil {
		sealed, err := a.encryptor.Seal(data)
		if err != nil {
			return "", fmt.Errorf("failed to seal export: %w", err)
		}
		data = sealed
		name += sealedSuffix
	}

	path := filepath.Join(a.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	return path, nil
}

// Load reads a file written by Save, opening it if it was sealed.
func (a *Archive) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}

	if !strings.HasSuffix(path, sealedSuffix) {
		return data, nil
	}
	if a.encryptor == nil {
		return nil, fmt.Errorf("export %s is sealed but no encryption key is configured", filepath.Base(path))
	}

	return a.encryptor.Open(data)
}

// SanitizeFilename strips directories and anything outside [A-Za-z0-9._-].
func SanitizeFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)

	clean = strings.TrimLeft(clean, ".")
	if clean == "" {
		return "export.txt"
	}
	return clean
}
