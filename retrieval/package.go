package retrieval

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"licensetools/archive"
	"licensetools/download"
	"licensetools/logger"
	"licensetools/pymeta"
	"licensetools/rpmmeta"
)

// runOnPackageArchive unpacks a local package archive into a temporary
// directory and scans it. RPM packages additionally contribute a leading
// result carrying the license declared in their headers.
func runOnPackageArchive(ctx context.Context, archivePath string, opts Options) ([]*FileResult, error) {
	if !archive.CanExtract(archivePath) {
		return nil, fmt.Errorf("%w: %s", archive.ErrUnsupportedFormat, archivePath)
	}

	var results []*FileResult
	if strings.HasSuffix(strings.ToLower(archivePath), ".rpm") {
		pkg, err := rpmmeta.ReadPackage(archivePath)
		if err != nil {
			return nil, err
		}
		if pkg.License != "" {
			results = append(results, newDeclaredLicenseResult(archivePath, filepath.Base(archivePath), pkg.License))
		}
	}

	unpackDir, err := os.MkdirTemp("", "licensetools-unpack-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(unpackDir)

	if err := archive.Extract(archivePath, unpackDir, false); err != nil {
		return nil, err
	}

	if opts.Flags.Has(FlagPythonMetadata) {
		side := newSideChannel(opts.SideOutput)
		rendered, err := pymeta.RenderPackageMetadata(unpackDir)
		switch {
		case err == nil:
			side.emit(filepath.Base(archivePath), rendered)
		case errors.Is(err, pymeta.ErrNoMetadata):
			logger.Warnf("No python metadata in %s", archivePath)
		default:
			return nil, err
		}
	}

	scanned, err := runOnDirectory(ctx, unpackDir, unpackDir, opts)
	if err != nil {
		return nil, err
	}
	return append(results, scanned...), nil
}

// runOnDownloadedArchive fetches the archive behind the URL into a
// temporary file (keeping its name, so the format stays recognizable) and
// scans it. The download is always removed afterwards.
func runOnDownloadedArchive(ctx context.Context, archiveURL string, opts Options) ([]*FileResult, error) {
	parsed, err := url.Parse(archiveURL)
	if err != nil {
		return nil, fmt.Errorf("invalid archive URL %s: %w", archiveURL, err)
	}
	filename := path.Base(parsed.Path)
	if filename == "" || filename == "." || filename == "/" {
		return nil, fmt.Errorf("cannot derive a file name from %s", archiveURL)
	}

	downloadDir, err := os.MkdirTemp("", "licensetools-download-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(downloadDir)

	d := download.Download{URL: archiveURL, Filename: filename}
	if err := download.NewClient().FetchFile(ctx, d, downloadDir); err != nil {
		return nil, err
	}
	return runOnPackageArchive(ctx, filepath.Join(downloadDir, filename), opts)
}

// runOnDownloadedPackage resolves a Python package definition through pip
// and scans the downloaded distribution.
func runOnDownloadedPackage(ctx context.Context, definition string, opts Options) ([]*FileResult, error) {
	downloadDir, err := os.MkdirTemp("", "licensetools-pip-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(downloadDir)

	file, err := pymeta.DownloadPackage(ctx, definition, opts.IndexURL, opts.PreferSdist, downloadDir)
	if err != nil {
		return nil, err
	}
	return runOnPackageArchive(ctx, file, opts)
}
