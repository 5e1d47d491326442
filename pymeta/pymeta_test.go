package pymeta

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleMetadata = `Metadata-Version: 2.1
Name: requests
Version: 2.31.0
Summary: Python HTTP for Humans.
Home-page: https://requests.readthedocs.io
Author: Kenneth Reitz
Author-email: me@kennethreitz.org
License: Apache-2.0
Classifier: Development Status :: 5 - Production/Stable
Classifier: Programming Language :: Python :: 3
Requires-Dist: charset-normalizer (<4,>=2)
Requires-Dist: idna (<4,>=2.5)

Requests is an elegant and simple HTTP library for Python.
`

func TestFindMetadataFileDistInfo(t *testing.T) {
	dir := t.TempDir()
	metaDir := filepath.Join(dir, "requests-2.31.0.dist-info")
	if err := os.MkdirAll(metaDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(metaDir, "METADATA")
	if err := os.WriteFile(path, []byte(sampleMetadata), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	found, err := FindMetadataFile(dir)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != path {
		t.Fatalf("found = %q, want %q", found, path)
	}
}

func TestFindMetadataFileEggInfo(t *testing.T) {
	dir := t.TempDir()
	metaDir := filepath.Join(dir, "requests.egg-info")
	if err := os.MkdirAll(metaDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(metaDir, "PKG-INFO")
	if err := os.WriteFile(path, []byte(sampleMetadata), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	found, err := FindMetadataFile(dir)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != path {
		t.Fatalf("found = %q, want %q", found, path)
	}
}

func TestFindMetadataFileMissing(t *testing.T) {
	_, err := FindMetadataFile(t.TempDir())
	if !errors.Is(err, ErrNoMetadata) {
		t.Fatalf("err = %v, want ErrNoMetadata", err)
	}
}

func TestRenderMetadataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "METADATA")
	if err := os.WriteFile(path, []byte(sampleMetadata), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rendered, err := RenderMetadataFile(path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"Name: requests",
		"Version: 2.31.0",
		"License: Apache-2.0",
		"* Programming Language :: Python :: 3",
		"* idna (<4,>=2.5)",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendering missing %q:\n%s", want, rendered)
		}
	}
	if strings.Contains(rendered, "elegant and simple") {
		t.Error("description body must not be rendered")
	}
}
