// Package cargo reads Rust crate metadata: Cargo.toml manifests for
// rendering and Cargo.lock files for bulk crate downloads.
package cargo

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"

	"licensetools/download"
	"licensetools/logger"
	"licensetools/utils"
)

// cratesIOSource is the registry source identifier crates.io writes into
// lock files. Packages from any other source cannot be downloaded here.
const cratesIOSource = "registry+https://github.com/rust-lang/crates.io-index"

type manifestPackage struct {
	Name          string   `toml:"name"`
	Version       string   `toml:"version"`
	Edition       string   `toml:"edition"`
	Description   string   `toml:"description"`
	License       string   `toml:"license"`
	LicenseFile   string   `toml:"license-file"`
	Authors       []string `toml:"authors"`
	Repository    string   `toml:"repository"`
	Homepage      string   `toml:"homepage"`
	Documentation string   `toml:"documentation"`
	Keywords      []string `toml:"keywords"`
	Categories    []string `toml:"categories"`
}

type manifest struct {
	Package manifestPackage `toml:"package"`
}

// RenderManifest reads the Cargo.toml at path and renders its package
// section as aligned key/value lines.
func RenderManifest(path string) (string, error) {
	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}
	p := m.Package
	license := p.License
	if license == "" && p.LicenseFile != "" {
		license = "file: " + p.LicenseFile
	}
	fields := []utils.RenderField{
		{Name: "Name", Value: p.Name},
		{Name: "Version", Value: p.Version},
		{Name: "Description", Value: p.Description},
		{Name: "License", Value: license},
		{Name: "Authors", Multi: true, Values: p.Authors},
		{Name: "Repository", Value: p.Repository},
		{Name: "Homepage", Value: p.Homepage},
		{Name: "Documentation", Value: p.Documentation},
		{Name: "Keywords", Multi: true, Values: p.Keywords},
		{Name: "Categories", Multi: true, Values: p.Categories},
	}
	return utils.RenderFields(fields), nil
}

// PackageVersion is one pinned package from a Cargo.lock file.
type PackageVersion struct {
	Name     string `toml:"name"`
	Version  string `toml:"version"`
	Source   string `toml:"source"`
	Checksum string `toml:"checksum"`
}

// ToDownload maps the package to its crates.io download, verified against
// the lock file checksum.
func (p PackageVersion) ToDownload() download.Download {
	return download.Download{
		URL:      fmt.Sprintf("https://crates.io/api/v1/crates/%s/%s/download", p.Name, p.Version),
		Filename: fmt.Sprintf("%s_%s.crate", p.Name, p.Version),
		SHA256:   p.Checksum,
	}
}

type lockFile struct {
	Package []PackageVersion `toml:"package"`
}

// ParseLockFile returns the packages pinned in the Cargo.lock at path.
func ParseLockFile(path string) ([]PackageVersion, error) {
	var lock lockFile
	if _, err := toml.DecodeFile(path, &lock); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return lock.Package, nil
}

// DownloadFromLockFile fetches every crates.io package of the given lock
// file into targetDirectory, one request per second. Packages from other
// sources (path or git dependencies, the workspace root) are skipped with
// a warning. The batch halts at the first failure.
func DownloadFromLockFile(ctx context.Context, lockPath, targetDirectory string) error {
	packages, err := ParseLockFile(lockPath)
	if err != nil {
		return err
	}
	var downloads []download.Download
	for _, pkg := range packages {
		if pkg.Source != cratesIOSource {
			logger.Warnf("Skipping %s %s from source %q", pkg.Name, pkg.Version, pkg.Source)
			continue
		}
		downloads = append(downloads, pkg.ToDownload())
	}
	logger.Infof("Downloading %d crates to %s", len(downloads), targetDirectory)
	return download.NewClient().FetchSequential(ctx, downloads, targetDirectory)
}
