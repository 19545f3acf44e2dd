package triage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrCollision matches any *CollisionError with errors.Is
var ErrCollision = errors.New("move destination has same name file")

// CollisionError is returned when the destination already holds a file with
// the same name. Nothing is overwritten.
type CollisionError struct {
	Path string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCollision, e.Path)
}

// Is reports whether target is ErrCollision
func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// MoveImage moves src into destDir, creating destDir and any missing parents.
// It refuses to overwrite an existing file and returns the new path.
func MoveImage(src, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination directory %s: %w", destDir, err)
	}

	destPath := filepath.Join(destDir, filepath.Base(src))

	if _, err := os.Lstat(destPath); err == nil {
		return "", &CollisionError{Path: destPath}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to check destination %s: %w", destPath, err)
	}

	// Only the sorter moves files, so nothing can appear between the check and the rename
	if err := os.Rename(src, destPath); err != nil {
		return "", fmt.Errorf("failed to move image from %s to %s: %w", src, destPath, err)
	}

	return destPath, nil
}
