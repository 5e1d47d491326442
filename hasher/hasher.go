package hasher

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"sync"

	"lukechampine.com/blake3"

	"licensetools/logger"
)

const hashBufferSize = 64 * 1024

var hashBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, hashBufferSize)
		return &buf
	},
}

// ComputeHashes reads the file once and computes the requested digests.
// Supported algorithms: md5, sha1, sha256, blake3. Unsupported names are
// logged and skipped.
func ComputeHashes(path string, algorithms []string) map[string]string {
	hashes := make(map[string]string, len(algorithms))

	file, err := os.Open(path)
	if err != nil {
		logger.Warnf("Failed to open file for hashing %s: %v", path, err)
		return hashes
	}
	defer file.Close()

	type entry struct {
		name string
		h    hash.Hash
	}
	entries := make([]entry, 0, len(algorithms))
	seen := make(map[string]struct{}, len(algorithms))
	for _, algo := range algorithms {
		if _, ok := seen[algo]; ok {
			continue
		}
		seen[algo] = struct{}{}
		switch algo {
		case "md5":
			entries = append(entries, entry{name: "md5", h: md5.New()})
		case "sha1":
			entries = append(entries, entry{name: "sha1", h: sha1.New()})
		case "sha256":
			entries = append(entries, entry{name: "sha256", h: sha256.New()})
		case "blake3":
			entries = append(entries, entry{name: "blake3", h: blake3.New(32, nil)})
		default:
			logger.Warnf("Unsupported hash algorithm: %s", algo)
		}
	}
	if len(entries) == 0 {
		return hashes
	}

	bufferPtr := hashBufferPool.Get().(*[]byte)
	buffer := *bufferPtr
	for {
		n, readErr := file.Read(buffer)
		if n > 0 {
			chunk := buffer[:n]
			for i := range entries {
				_, _ = entries[i].h.Write(chunk)
			}
		}
		if readErr != nil {
			if readErr != io.EOF {
				logger.Warnf("Failed to compute hashes for %s: %v", path, readErr)
			}
			break
		}
	}
	hashBufferPool.Put(bufferPtr)

	for i := range entries {
		hashes[entries[i].name] = hex.EncodeToString(entries[i].h.Sum(nil))
	}
	return hashes
}
