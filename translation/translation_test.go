package translation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsCompiledGettext(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"little.mo", []byte{0xde, 0x12, 0x04, 0x95, 0x00, 0x00}, true},
		{"big.mo", []byte{0x95, 0x04, 0x12, 0xde, 0x00, 0x00}, true},
		{"plain.po", []byte("msgid \"\"\n"), false},
		{"short", []byte{0xde}, false},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name)
		if err := os.WriteFile(path, tc.content, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if got := IsCompiledGettext(path); got != tc.want {
			t.Errorf("IsCompiledGettext(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
