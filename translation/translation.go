// Package translation dumps compiled gettext catalogs (.mo files) back
// into readable form, since their header comments often carry licensing
// statements.
package translation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Gettext magic number, both byte orders.
var (
	magicLittleEndian = []byte{0xde, 0x12, 0x04, 0x95}
	magicBigEndian    = []byte{0x95, 0x04, 0x12, 0xde}
)

// IsCompiledGettext reports whether the file carries the gettext .mo magic.
func IsCompiledGettext(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := f.Read(magic); err != nil {
		return false
	}
	return bytes.Equal(magic, magicLittleEndian) || bytes.Equal(magic, magicBigEndian)
}

// Dump converts the compiled catalog back to PO form using msgunfmt. The
// msgunfmt tool must be present on the host.
func Dump(ctx context.Context, path string) (string, error) {
	msgunfmt, err := exec.LookPath("msgunfmt")
	if err != nil {
		return "", errors.New("msgunfmt not found")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, msgunfmt, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("msgunfmt failed for %s: %v: %s", path, err, stderr.String())
	}
	return stdout.String(), nil
}
