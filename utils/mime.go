package utils

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/h2non/filetype"
)

// MimeType sniffs the MIME type from the file header. Files without a
// recognized magic number are classified as text/plain when their leading
// bytes look like text, otherwise application/octet-stream.
func MimeType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 8192)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	buf = buf[:n]

	kind, err := filetype.Match(buf)
	if err != nil {
		return "", err
	}
	if kind != filetype.Unknown && kind.MIME.Value != "" {
		return kind.MIME.Value, nil
	}
	if LooksLikeText(buf) {
		return "text/plain", nil
	}
	return "application/octet-stream", nil
}

// LooksLikeText reports whether the sample is plausibly UTF-8 text.
func LooksLikeText(sample []byte) bool {
	if len(sample) == 0 {
		return true
	}
	if !utf8.Valid(sample) {
		return false
	}
	var control int
	for _, b := range sample {
		if b == 0 {
			return false
		}
		if b < 0x09 || (b > 0x0D && b < 0x20) {
			control++
		}
	}
	return control <= len(sample)/10
}
