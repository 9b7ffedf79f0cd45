package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"resume-matcher-backend/internal/shared/util"
)

// Store keeps uploaded resume files on the local filesystem and hands out
// durable paths. Retention and deletion policy belongs to the caller.
type Store struct {
	baseDir string
}

// New creates an upload store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Save writes the reader to disk under the owner's namespace and returns the
// absolute path of the retained file.
func (s *Store) Save(ctx context.Context, ownerKey, fileName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", 0, fmt.Errorf("sanitize file name: %w", err)
	}
	if ownerKey == "" {
		ownerKey = "guest"
	}

	dirPath := filepath.Join(s.baseDir, util.HashUserKey(ownerKey))
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return "", 0, fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(dirPath, uuid.NewString()+"_"+sanitized)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		return "", 0, fmt.Errorf("write body: %w", err)
	}

	abs, err := filepath.Abs(fullPath)
	if err != nil {
		abs = fullPath
	}
	return abs, size, nil
}

// Remove deletes a retained file. Removing a file that is already gone is
// not an error.
func (s *Store) Remove(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// Stat reports the size of a retained file. A missing file surfaces as an
// os.IsNotExist error to the caller; there is no retry.
func (s *Store) Stat(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
