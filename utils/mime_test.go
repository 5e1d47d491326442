package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMimeTypeText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(path, []byte("hello world\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	mime, err := MimeType(path)
	if err != nil {
		t.Fatalf("mime: %v", err)
	}
	if mime != "text/plain" {
		t.Fatalf("got %q, want text/plain", mime)
	}
}

func TestMimeTypeBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	if err := os.WriteFile(path, []byte{0x00, 0x01, 0x02, 0xFF}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	mime, err := MimeType(path)
	if err != nil {
		t.Fatalf("mime: %v", err)
	}
	if mime != "application/octet-stream" {
		t.Fatalf("got %q, want application/octet-stream", mime)
	}
}

func TestLooksLikeText(t *testing.T) {
	if !LooksLikeText([]byte("regular text")) {
		t.Fatal("expected text")
	}
	if LooksLikeText([]byte{0x00, 0x01}) {
		t.Fatal("expected binary")
	}
}
