package utils

import (
	"os"
)

// FixedNameDir creates a directory with a predetermined name, similar to a
// temporary directory but with a stable, derived name. When the target
// already exists, the behavior depends on FallbackToRandom: either a
// randomized sibling directory is used or creation fails.
type FixedNameDir struct {
	Directory        string
	FallbackToRandom bool
	DeleteAfterwards bool

	created string
}

// Create makes the directory and returns its final path, which may differ
// from Directory when the random fallback was taken.
func (d *FixedNameDir) Create() (string, error) {
	if _, err := os.Stat(d.Directory); err == nil {
		if !d.FallbackToRandom {
			// Let os.Mkdir produce the detailed "file exists" error.
			if err := os.Mkdir(d.Directory, 0o755); err != nil {
				return "", err
			}
			d.created = d.Directory
			return d.created, nil
		}
		parent := parentDir(d.Directory)
		created, err := os.MkdirTemp(parent, "unpack-")
		if err != nil {
			return "", err
		}
		d.created = created
		return d.created, nil
	}

	if err := os.Mkdir(d.Directory, 0o755); err != nil {
		return "", err
	}
	d.created = d.Directory
	return d.created, nil
}

// Cleanup removes the created directory when DeleteAfterwards is set.
// Calling it without a prior successful Create is a no-op.
func (d *FixedNameDir) Cleanup() error {
	if !d.DeleteAfterwards || d.created == "" {
		return nil
	}
	return os.RemoveAll(d.created)
}

func parentDir(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if os.IsPathSeparator(path[i]) {
			return path[:i]
		}
	}
	return "."
}
