package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func makeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.CreateHeader(&zip.FileHeader{Name: name})
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write zip: %v", err)
	}
}

func makeTarGz(t *testing.T, path string, entries map[string][]byte) {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range entries {
		header := &tar.Header{Name: name, Mode: 0o644, Size: int64(len(content))}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("write header: %v", err)
		}
		if _, err := tw.Write(content); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write archive: %v", err)
	}
}

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.zip")
	makeZip(t, path, map[string]string{
		"README.md":      "hello\n",
		"pkg/module.py":  "print(42)\n",
		"pkg/extra/a.go": "package a\n",
	})

	target := filepath.Join(dir, "out")
	if err := Extract(path, target, false); err != nil {
		t.Fatalf("extract: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(target, "pkg", "module.py"))
	if err != nil {
		t.Fatalf("read extracted file: %v", err)
	}
	if string(content) != "print(42)\n" {
		t.Fatalf("content = %q", content)
	}
}

func TestExtractZipPathTraversal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evil.zip")
	makeZip(t, path, map[string]string{"../evil.txt": "boom"})

	target := filepath.Join(dir, "out")
	err := Extract(path, target, false)
	if !errors.Is(err, ErrPathTraversal) {
		t.Fatalf("err = %v, want ErrPathTraversal", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "evil.txt")); !os.IsNotExist(statErr) {
		t.Fatal("traversal entry must not be written")
	}
}

func TestExtractTarGz(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "source.tar.gz")
	makeTarGz(t, path, map[string][]byte{
		"src/main.c": []byte("int main(void) { return 0; }\n"),
	})

	target := filepath.Join(dir, "out")
	if err := Extract(path, target, false); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "src", "main.c")); err != nil {
		t.Fatalf("missing extracted file: %v", err)
	}
}

func TestExtractTarPathTraversal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evil.tar.gz")
	makeTarGz(t, path, map[string][]byte{"../../evil": []byte("boom")})

	if err := Extract(path, filepath.Join(dir, "out"), false); !errors.Is(err, ErrPathTraversal) {
		t.Fatalf("err = %v, want ErrPathTraversal", err)
	}
}

func TestExtractRecursive(t *testing.T) {
	dir := t.TempDir()
	inner := filepath.Join(dir, "inner.tar.gz")
	makeTarGz(t, inner, map[string][]byte{"LICENSE": []byte("MIT License\n")})
	innerBytes, err := os.ReadFile(inner)
	if err != nil {
		t.Fatalf("read inner: %v", err)
	}

	outer := filepath.Join(dir, "outer.tar.gz")
	makeTarGz(t, outer, map[string][]byte{
		"nested/inner.tar.gz": innerBytes,
		"top.txt":             []byte("top\n"),
	})

	target := filepath.Join(dir, "out")
	if err := Extract(outer, target, true); err != nil {
		t.Fatalf("extract: %v", err)
	}
	extracted := filepath.Join(target, "nested", "inner_tar_gz", "LICENSE")
	if _, err := os.Stat(extracted); err != nil {
		t.Fatalf("missing nested extraction: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "nested", "inner.tar.gz")); !os.IsNotExist(err) {
		t.Fatal("nested archive must be removed after extraction")
	}
}

func TestExtractSingleGz(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt.gz")
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte("compressed notes\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	target := filepath.Join(dir, "out")
	if err := Extract(path, target, false); err != nil {
		t.Fatalf("extract: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(target, "notes.txt"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "compressed notes\n" {
		t.Fatalf("content = %q", content)
	}
}

func TestExtractUnsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Extract(path, filepath.Join(dir, "out"), false); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestCanExtract(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"pkg.whl", true},
		{"lib.jar", true},
		{"src.tar.bz2", true},
		{"src.tgz", true},
		{"serde-1.0.0.crate", true},
		{"app-1.0-1.x86_64.rpm", true},
		{"notes.txt", false},
		{"binary.so", false},
	}
	dir := t.TempDir()
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name)
		if err := os.WriteFile(path, []byte("irrelevant"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if got := CanExtract(path); got != tc.want {
			t.Errorf("CanExtract(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanExtractMagicFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob")
	makeZip(t, path, map[string]string{"a": "b"})
	if !CanExtract(path) {
		t.Fatal("zip magic without suffix must be recognized")
	}
}

func TestUnpackDirName(t *testing.T) {
	cases := map[string]string{
		"/tmp/archive.tar.bz2": "archive_tar_bz2",
		"wheel-1.0.whl":        "wheel-1_0_whl",
		"plain":                "plain",
	}
	for path, want := range cases {
		if got := UnpackDirName(path); got != want {
			t.Errorf("UnpackDirName(%s) = %q, want %q", path, got, want)
		}
	}
}
