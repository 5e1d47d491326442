package archive

import (
	"os"
	"path/filepath"
	"strings"
)

// extractSingle handles bare compressed files (.gz, .bz2, .xz): the target
// receives one file named after the archive minus its compression suffix.
func extractSingle(path, target string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	name := filepath.Base(path)
	lower := strings.ToLower(name)
	for _, suffix := range []string{".gz", ".bz2", ".xz"} {
		if strings.HasSuffix(lower, suffix) {
			name = name[:len(name)-len(suffix)]
			break
		}
	}
	if name == "" {
		name = "decompressed"
	}

	stream, err := decompressor(f, lower)
	if err != nil {
		return err
	}
	dest, err := securePath(target, name)
	if err != nil {
		return err
	}
	return writeTarEntry(stream, dest, 0o644)
}
