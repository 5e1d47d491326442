package archive

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cavaliergopher/cpio"
	"github.com/cavaliergopher/rpm/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"github.com/ulikunitz/xz/lzma"
)

// extractRPM reads the RPM lead and headers, then unpacks the cpio payload
// with the decompressor the package declares.
func extractRPM(path, target string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pkg, err := rpm.Read(f)
	if err != nil {
		return err
	}
	if format := pkg.PayloadFormat(); format != "cpio" {
		return fmt.Errorf("%w: rpm payload format %q", ErrUnsupportedFormat, format)
	}

	var payload io.Reader
	switch compression := pkg.PayloadCompression(); compression {
	case "gzip":
		payload, err = gzip.NewReader(f)
	case "bzip2":
		payload = bzip2.NewReader(f)
	case "xz":
		payload, err = xz.NewReader(f)
	case "lzma":
		payload, err = lzma.NewReader(f)
	case "zstd":
		var decoder *zstd.Decoder
		decoder, err = zstd.NewReader(f)
		if decoder != nil {
			defer decoder.Close()
			payload = decoder
		}
	default:
		return fmt.Errorf("%w: rpm payload compression %q", ErrUnsupportedFormat, compression)
	}
	if err != nil {
		return err
	}

	reader := cpio.NewReader(payload)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		name := strings.TrimPrefix(header.Name, "./")
		if name == "" || name == "." {
			continue
		}
		dest, err := securePath(target, name)
		if err != nil {
			return err
		}
		switch {
		case header.Mode.IsDir():
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
		case header.Mode.IsRegular():
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			if err := writeTarEntry(reader, dest, os.FileMode(header.Mode.Perm())); err != nil {
				return err
			}
		case header.Linkname != "":
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			if err := secureSymlink(target, dest, header.Linkname); err != nil {
				return err
			}
		}
	}
}
