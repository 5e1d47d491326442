package cargo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleManifest = `[package]
name = "serde"
version = "1.0.200"
edition = "2018"
description = "A generic serialization/deserialization framework"
license = "MIT OR Apache-2.0"
authors = ["Erick Tryzelaar <erick.tryzelaar@gmail.com>", "David Tolnay <dtolnay@gmail.com>"]
repository = "https://github.com/serde-rs/serde"
keywords = ["serde", "serialization", "no_std"]

[dependencies]
serde_derive = { version = "=1.0.200", optional = true }
`

const sampleLock = `version = 3

[[package]]
name = "itoa"
version = "1.0.11"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "49f1f14873335454500d59611f1cf4a4b0f786f9ac11f4312a78e4cf2566695b"

[[package]]
name = "local-helper"
version = "0.1.0"

[[package]]
name = "ryu"
version = "1.0.17"
source = "registry+https://github.com/rust-lang/crates.io-index"
checksum = "e591e719385e6ebaeb5ce5d3887f7d5676fceca6411d1925ccc95745f3d07f7a"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestRenderManifest(t *testing.T) {
	path := writeFile(t, "Cargo.toml", sampleManifest)
	rendered, err := RenderManifest(path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"Name: serde",
		"Version: 1.0.200",
		"License: MIT OR Apache-2.0",
		"* David Tolnay <dtolnay@gmail.com>",
	} {
		if !strings.Contains(rendered, want) {
			t.Errorf("rendering missing %q:\n%s", want, rendered)
		}
	}
}

func TestRenderManifestLicenseFile(t *testing.T) {
	path := writeFile(t, "Cargo.toml", "[package]\nname = \"x\"\nversion = \"0.1.0\"\nlicense-file = \"COPYING\"\n")
	rendered, err := RenderManifest(path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(rendered, "License: file: COPYING") {
		t.Errorf("rendering missing license file:\n%s", rendered)
	}
}

func TestParseLockFile(t *testing.T) {
	path := writeFile(t, "Cargo.lock", sampleLock)
	packages, err := ParseLockFile(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(packages) != 3 {
		t.Fatalf("packages = %d, want 3", len(packages))
	}
	if packages[0].Name != "itoa" || packages[0].Version != "1.0.11" {
		t.Fatalf("first package = %+v", packages[0])
	}
	if packages[1].Source != "" || packages[1].Checksum != "" {
		t.Fatalf("workspace package must have no source: %+v", packages[1])
	}
}

func TestToDownload(t *testing.T) {
	p := PackageVersion{
		Name:     "itoa",
		Version:  "1.0.11",
		Source:   cratesIOSource,
		Checksum: "49f1f14873335454500d59611f1cf4a4b0f786f9ac11f4312a78e4cf2566695b",
	}
	d := p.ToDownload()
	if d.URL != "https://crates.io/api/v1/crates/itoa/1.0.11/download" {
		t.Fatalf("url = %q", d.URL)
	}
	if d.Filename != "itoa_1.0.11.crate" {
		t.Fatalf("filename = %q", d.Filename)
	}
	if d.SHA256 != p.Checksum {
		t.Fatalf("sha256 = %q", d.SHA256)
	}
}
