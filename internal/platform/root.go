package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned by FindRoot when no data directory marker exists
// between startDir and the filesystem root.
var ErrRootNotFound = errors.New("root not found")

// rootMarkers identify a timedpad data directory.
var rootMarkers = []string{".timedpad", "timedpad.yaml", "timedpad.yml", "timedpad.toml"}

// FindRoot looks upwards from startDir for a directory holding one of the
// root markers and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for dir := abs; ; {
		for _, marker := range rootMarkers {
			if hasFile(dir, marker) {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
