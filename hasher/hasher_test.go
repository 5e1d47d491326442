package hasher

import (
	"os"
	"path/filepath"
	"testing"

	"licensetools/logger"
)

func init() {
	logger.Init("error")
}

func TestComputeHashes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	hashes := ComputeHashes(path, []string{"md5", "sha1", "sha256", "blake3"})
	want := map[string]string{
		"md5":    "900150983cd24fb0d6963f7d28e17f72",
		"sha1":   "a9993e364706816aba3e25717850c26c9cd0d89d",
		"sha256": "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
	}
	for algo, expected := range want {
		if hashes[algo] != expected {
			t.Errorf("%s = %s, want %s", algo, hashes[algo], expected)
		}
	}
	if len(hashes["blake3"]) != 64 {
		t.Errorf("blake3 digest has unexpected length: %q", hashes["blake3"])
	}
}

func TestComputeHashesUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	hashes := ComputeHashes(path, []string{"whirlpool"})
	if len(hashes) != 0 {
		t.Fatalf("expected no hashes, got %v", hashes)
	}
}
