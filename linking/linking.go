// Package linking inspects dynamically linked ELF binaries.
package linking

import (
	"bytes"
	"context"
	"debug/elf"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// IsELF reports whether the file starts with the ELF magic.
func IsELF(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	magic := make([]byte, len(elf.ELFMAG))
	if _, err := f.Read(magic); err != nil {
		return false
	}
	return string(magic) == elf.ELFMAG
}

// SharedObjects lists the shared libraries an ELF binary is linked
// against, straight from its dynamic section.
func SharedObjects(path string) ([]string, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ImportedLibraries()
}

// ResolveLinkage runs ldd on the binary and returns its resolution output.
// Statically linked binaries yield an empty string. The ldd tool must be
// present on the host.
func ResolveLinkage(ctx context.Context, path string) (string, error) {
	ldd, err := exec.LookPath("ldd")
	if err != nil {
		return "", errors.New("ldd not found")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, ldd, path)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		combined := stderr.String() + stdout.String()
		if strings.Contains(combined, "not a dynamic executable") {
			return "", nil
		}
		return "", fmt.Errorf("ldd failed for %s: %v: %s", path, err, strings.TrimSpace(combined))
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}
