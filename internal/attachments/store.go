// Package attachments stores message file uploads on local disk and hands
// back an opaque locator recorded verbatim on the message.
package attachments

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

// MaxSizeBytes is the hard upper bound on a single attachment (10 MiB).
const MaxSizeBytes = 10 * 1024 * 1024

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// Store writes attachments under a base directory.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore constructs a store rooted at dir. maxBytes <= 0 falls back to the
// 10 MiB default.
func NewStore(dir string, maxBytes int64) *Store {
	if maxBytes <= 0 {
		maxBytes = MaxSizeBytes
	}
	return &Store{dir: dir, maxBytes: maxBytes}
}

// MaxBytes reports the configured per-file size limit.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates size, sanitizes the filename, writes the bytes under a
// collision-free name and returns the locator.
func (s *Store) Save(fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperrors.NewValidationError("attachment is empty", nil)
	}
	if int64(len(data)) > s.maxBytes {
		return "", apperrors.NewValidationError("attachment too large", map[string]any{
			"max_bytes": s.maxBytes,
			"got_bytes": len(data),
		})
	}

	root, err := filepath.Abs(s.dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", err
	}

	dest := filepath.Join(root, uniqueName(fileName))
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", err
	}
	return dest, nil
}

// uniqueName sanitizes the original filename and prefixes it so concurrent
// uploads of the same name never collide.
func uniqueName(original string) string {
	base := filepath.Base(original)
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "upload.bin"
	}
	base = strings.Join(strings.Fields(base), "_")
	base = unsafeChars.ReplaceAllString(base, "")
	if base == "" {
		base = "upload.bin"
	}
	return fmt.Sprintf("%s_%d_%s", uuid.NewString(), time.Now().UnixMilli(), base)
}
