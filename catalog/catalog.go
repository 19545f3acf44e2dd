// Package catalog scans a directory once and exposes the eligible images as an
// immutable, indexed sequence shared by the worker pool and the sorter.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrInvalidDirectory is returned when the path is not a readable directory
	ErrInvalidDirectory = errors.New("not a readable directory")
	// ErrEmptyCatalog is returned when the directory holds no eligible images
	ErrEmptyCatalog = errors.New("no images found")
)

// Catalog is the ordered list of image paths found in a directory.
// It is never modified after Build returns, so it is safe for concurrent reads.
type Catalog struct {
	dir   string
	paths []string
}

// Build scans directory (non-recursively) and returns a catalog of every regular
// file whose extension is an image extension. Entries that cannot be stat'ed are
// skipped.
func Build(directory string) (*Catalog, error) {
	fi, err := os.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDirectory, directory, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirectory, directory)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDirectory, directory, err)
	}

	var paths []string
	for _, entry := range entries {
		path := filepath.Join(directory, entry.Name())
		if !IsImageFile(path) {
			continue
		}

		// Stat follows symlinks so linked images are picked up too
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		paths = append(paths, path)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrEmptyCatalog, directory)
	}

	return &Catalog{dir: directory, paths: paths}, nil
}

// New builds a catalog from an explicit list of paths. The slice is copied.
func New(paths []string) *Catalog {
	return &Catalog{paths: append([]string(nil), paths...)}
}

// Dir returns the scanned directory, or "" for catalogs created with New
func (c *Catalog) Dir() string { return c.dir }

// Len returns the number of images in the catalog
func (c *Catalog) Len() int { return len(c.paths) }

// Path returns the path stored at index i
func (c *Catalog) Path(i int) string { return c.paths[i] }

// Paths returns a copy of every path in catalog order
func (c *Catalog) Paths() []string {
	return append([]string(nil), c.paths...)
}
