// Package archive extracts the archive formats encountered in software
// distributions: zip containers (including wheels, jars and eggs), the tar
// family, RPM packages and bare compressed files.
package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"licensetools/logger"
)

// ErrPathTraversal marks an archive entry whose path would escape the
// extraction target. Extraction aborts immediately.
var ErrPathTraversal = errors.New("archive entry escapes extraction target")

// ErrUnsupportedFormat marks a file no handler is registered for.
var ErrUnsupportedFormat = errors.New("unsupported archive format")

type extractFunc func(path, target string) error

// Suffix handlers, longest match wins.
var handlers = []struct {
	suffix  string
	extract extractFunc
}{
	{".tar.gz", extractTar},
	{".tar.bz2", extractTar},
	{".tar.xz", extractTar},
	{".tar", extractTar},
	{".tgz", extractTar},
	{".tbz2", extractTar},
	{".txz", extractTar},
	{".crate", extractTar},
	{".zip", extractZip},
	{".whl", extractZip},
	{".jar", extractZip},
	{".egg", extractZip},
	{".rpm", extractRPM},
	{".gz", extractSingle},
	{".bz2", extractSingle},
	{".xz", extractSingle},
}

func handlerFor(path string) (extractFunc, bool) {
	name := strings.ToLower(filepath.Base(path))
	for _, h := range handlers {
		if strings.HasSuffix(name, h.suffix) {
			return h.extract, true
		}
	}
	return nil, false
}

// CanExtract reports whether path looks like an extractable archive. The
// suffix table decides; files without a known suffix fall back to magic
// number sniffing. Never returns an error.
func CanExtract(path string) bool {
	if _, ok := handlerFor(path); ok {
		return true
	}
	kind, err := filetype.MatchFile(path)
	if err != nil {
		return false
	}
	switch kind.Extension {
	case "zip", "tar", "gz", "bz2", "xz", "rpm":
		return true
	}
	return false
}

// UnpackDirName derives the fixed unpack directory name for an archive:
// the base name with every dot replaced by an underscore, so
// "archive.tar.bz2" unpacks into "archive_tar_bz2".
func UnpackDirName(path string) string {
	return strings.ReplaceAll(filepath.Base(path), ".", "_")
}

// Extract unpacks the archive at path into target. With recurse set, any
// archives contained in the result are unpacked in place (into their fixed
// unpack directory) and removed, repeatedly, until none remain.
func Extract(path, target string, recurse bool) error {
	extract, ok := handlerFor(path)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	if err := extract(path, target); err != nil {
		return fmt.Errorf("extracting %s: %w", path, err)
	}
	if !recurse {
		return nil
	}
	return extractNested(target)
}

func extractNested(target string) error {
	for {
		var nested []string
		err := filepath.WalkDir(target, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && CanExtract(path) {
				nested = append(nested, path)
			}
			return nil
		})
		if err != nil {
			return err
		}
		if len(nested) == 0 {
			return nil
		}
		for _, path := range nested {
			dir := filepath.Join(filepath.Dir(path), UnpackDirName(path))
			logger.Debugf("Extracting nested archive %s", path)
			if err := Extract(path, dir, false); err != nil {
				return err
			}
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}
}

// securePath joins an entry name onto the target and rejects results that
// would land outside it.
func securePath(target, name string) (string, error) {
	joined := filepath.Join(target, name)
	root := filepath.Clean(target)
	if joined != root && !strings.HasPrefix(joined, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrPathTraversal, name)
	}
	return joined, nil
}

// secureSymlink creates a symlink only when its resolved destination stays
// inside the target; anything else is skipped with a warning.
func secureSymlink(target, path, linkname string) error {
	if filepath.IsAbs(linkname) {
		logger.Warnf("Skipping absolute symlink %s -> %s", path, linkname)
		return nil
	}
	resolved := filepath.Join(filepath.Dir(path), linkname)
	root := filepath.Clean(target)
	if resolved != root && !strings.HasPrefix(resolved, root+string(os.PathSeparator)) {
		logger.Warnf("Skipping escaping symlink %s -> %s", path, linkname)
		return nil
	}
	return os.Symlink(linkname, path)
}
