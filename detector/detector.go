// Package detector extracts license, copyright, e-mail, URL and file
// information from individual files. Results are deterministic per file.
package detector

import (
	"fmt"
	"io"
	"os"
)

const maxContentBytes = 10 * 1024 * 1024

// Options selects which categories to extract.
type Options struct {
	Copyrights bool
	Emails     bool
	URLs       bool
	Licenses   bool
	FileInfo   bool

	// EmailLimit and URLLimit cap the number of reported matches.
	// Zero means the default of 50.
	EmailLimit int
	URLLimit   int
}

const defaultMatchLimit = 50

// Detect runs the requested analyses on path. Fields for categories that
// were not requested stay nil; requested categories always yield a non-nil,
// possibly empty record.
func Detect(path string, opts Options) (*Analysis, error) {
	analysis := &Analysis{}

	var content []byte
	if opts.Copyrights || opts.Emails || opts.URLs || opts.Licenses {
		var err error
		content, err = readContent(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	if opts.Copyrights {
		analysis.Copyrights = detectCopyrights(content)
	}
	if opts.Emails {
		limit := opts.EmailLimit
		if limit <= 0 {
			limit = defaultMatchLimit
		}
		analysis.Emails = detectEmails(content, limit)
	}
	if opts.URLs {
		limit := opts.URLLimit
		if limit <= 0 {
			limit = defaultMatchLimit
		}
		analysis.URLs = detectURLs(content, limit)
	}
	if opts.Licenses {
		analysis.Licenses = detectLicenses(content)
	}
	if opts.FileInfo {
		info, err := collectFileInfo(path)
		if err != nil {
			return nil, fmt.Errorf("file info for %s: %w", path, err)
		}
		analysis.FileInfo = info
	}
	return analysis, nil
}

func readContent(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxContentBytes))
}
