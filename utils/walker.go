package utils

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FileEntry pairs the absolute path of a file with its display path
// relative to the scanned root.
type FileEntry struct {
	Path      string
	ShortPath string
}

// FilesFromDirectory enumerates all files (not directories) below directory,
// recursively, ordered lexicographically by absolute path. The short path is
// the absolute path with the directory prefix stripped; prefix, when
// non-empty, is stripped instead. Short paths never start with a separator.
//
// The enumeration has no side effects and may be repeated after the
// directory contents changed.
func FilesFromDirectory(directory string, prefix string) ([]FileEntry, error) {
	root, err := filepath.Abs(directory)
	if err != nil {
		return nil, err
	}

	base := root
	if prefix != "" {
		if base, err = filepath.Abs(prefix); err != nil {
			return nil, err
		}
	}
	if !strings.HasSuffix(base, string(filepath.Separator)) {
		base += string(filepath.Separator)
	}

	var entries []FileEntry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		entries = append(entries, FileEntry{
			Path:      path,
			ShortPath: strings.TrimPrefix(path, base),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries, nil
}
