package utils

import (
	"path/filepath"
	"strings"
)

// networkMountRoots are top-level directories that usually hold NFS/SMB mounts
// or removable media on Linux and macOS
var networkMountRoots = []string{"mnt", "media", "Volumes"}

// networkIndicators mark a path component as a network share
var networkIndicators = []string{"nfs", "cifs", "smb", "webdav", "ftp", "sftp"}

// IsNetworkDrive reports whether a path looks like it lives on a network mount,
// where many parallel decoders tend to make reads slower rather than faster
func IsNetworkDrive(path string) bool {
	// UNC paths are checked before filepath.Abs rewrites them
	if strings.HasPrefix(path, "//") || strings.HasPrefix(path, `\\`) {
		return true
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	parts := strings.Split(filepath.ToSlash(absPath), "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if i == 1 {
			for _, root := range networkMountRoots {
				if part == root {
					return true
				}
			}
		}
		lower := strings.ToLower(part)
		for _, indicator := range networkIndicators {
			if strings.Contains(lower, indicator) {
				return true
			}
		}
	}

	return false
}

// DecodeWorkers picks the number of parallel decoders for images in dir.
// An explicit count always wins. Otherwise network mounts get a single
// worker and local directories get local.
func DecodeWorkers(dir string, configured, local int) int {
	if configured > 0 {
		return configured
	}
	if IsNetworkDrive(dir) {
		return 1
	}
	return local
}
