// Package rpmmeta decodes RPM package headers into a metadata record
// without touching the payload.
package rpmmeta

import (
	"os"
	"strconv"
	"time"

	"github.com/cavaliergopher/rpm/v2"
)

// PackageResult carries the header metadata of one RPM package.
type PackageResult struct {
	Name        string
	Epoch       int
	Version     string
	Release     string
	Arch        string
	Summary     string
	Description string
	Vendor      string
	License     string
	URL         string
	SourceRPM   string
	BuildTime   time.Time
	BuildHost   string
	Size        uint64
}

// ReadPackage decodes the lead and header sections of the RPM at path.
func ReadPackage(path string) (*PackageResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pkg, err := rpm.Read(f)
	if err != nil {
		return nil, err
	}
	return &PackageResult{
		Name:        pkg.Name(),
		Epoch:       pkg.Epoch(),
		Version:     pkg.Version(),
		Release:     pkg.Release(),
		Arch:        pkg.Architecture(),
		Summary:     pkg.Summary(),
		Description: pkg.Description(),
		Vendor:      pkg.Vendor(),
		License:     pkg.License(),
		URL:         pkg.URL(),
		SourceRPM:   pkg.SourceRPM(),
		BuildTime:   pkg.BuildTime(),
		BuildHost:   pkg.BuildHost(),
		Size:        pkg.Size(),
	}, nil
}

// FullVersion renders epoch, version and release the way rpm tools do.
func (p *PackageResult) FullVersion() string {
	version := p.Version + "-" + p.Release
	if p.Epoch > 0 {
		version = strconv.Itoa(p.Epoch) + ":" + version
	}
	return version
}
