package utils

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFilesFromDirectoryOrderAndShortPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "a", "z.txt"), "z")
	writeFile(t, filepath.Join(dir, "a", "a.txt"), "a")

	entries, err := FilesFromDirectory(dir, "")
	if err != nil {
		t.Fatalf("walk: %v", err)
	}

	var short []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.ShortPath, string(filepath.Separator)) {
			t.Errorf("short path starts with separator: %q", entry.ShortPath)
		}
		short = append(short, entry.ShortPath)
	}
	want := []string{
		filepath.Join("a", "a.txt"),
		filepath.Join("a", "z.txt"),
		"b.txt",
	}
	if !reflect.DeepEqual(short, want) {
		t.Fatalf("got %v, want %v", short, want)
	}
}

func TestFilesFromDirectoryIsRepeatable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "one"), "1")
	writeFile(t, filepath.Join(dir, "two"), "2")

	first, err := FilesFromDirectory(dir, "")
	if err != nil {
		t.Fatalf("first walk: %v", err)
	}
	second, err := FilesFromDirectory(dir, "")
	if err != nil {
		t.Fatalf("second walk: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("walks differ: %v vs %v", first, second)
	}
}

func TestFilesFromDirectoryCustomPrefix(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "unpacked")
	writeFile(t, filepath.Join(sub, "LICENSE"), "text")

	entries, err := FilesFromDirectory(sub, dir)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	want := filepath.Join("unpacked", "LICENSE")
	if entries[0].ShortPath != want {
		t.Fatalf("short path %q, want %q", entries[0].ShortPath, want)
	}
}
