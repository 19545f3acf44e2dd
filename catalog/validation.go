package catalog

import (
	"path/filepath"
	"strings"
)

// imageExtensions lists the extensions, lower-cased and without the dot, that
// the catalog accepts
var imageExtensions = []string{"jpg", "jpeg", "png", "gif", "bmp"}

// IsImageFile checks if the given path has one of the known image file extensions
func IsImageFile(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	ext = strings.ToLower(ext) // handle cases where extension is upper case

	for _, v := range imageExtensions {
		if v == ext {
			return true
		}
	}
	return false
}
