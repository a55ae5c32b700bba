package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Extensions of the temporary artifacts of one playback
const (
	DownloadExtension = ".m4a"
	PCMExtension      = ".wav"
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// TempPath returns the fixed path dir/basename+ext
func TempPath(dir, basename, ext string) string {
	return filepath.Join(dir, basename+ext)
}

// RemoveFiles deletes every path, ignoring the ones that do not exist. All
// other failures are joined into the returned error.
func RemoveFiles(paths ...string) error {
	var errs []error
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", p, err))
		}
	}
	return errors.Join(errs...)
}
