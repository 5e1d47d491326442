// Package fuzzy provides similarity digests for analyzed files.
package fuzzy

import (
	"bufio"
	"os"

	"github.com/glaslos/tlsh"
)

// TLSHDigest computes the TLSH similarity digest of the file. Files too
// small or too uniform for TLSH yield an empty digest and no error.
func TLSHDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	digest, err := tlsh.HashReader(bufio.NewReader(f))
	if err != nil {
		// TLSH rejects inputs below its minimum entropy; not an error
		// worth surfacing per file.
		return "", nil
	}
	return digest.String(), nil
}
