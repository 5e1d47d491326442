// Package pymeta reads Python package metadata: dist-info and egg-info
// renderings plus package resolution through pip.
package pymeta

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/textproto"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"licensetools/logger"
	"licensetools/utils"
)

// ErrNoMetadata is returned when a tree contains neither a dist-info
// METADATA nor an egg-info PKG-INFO file.
var ErrNoMetadata = errors.New("no python package metadata found")

// FindMetadataFile locates the metadata file of an unpacked Python package:
// `*.dist-info/METADATA` for wheels, `*.egg-info/PKG-INFO` for sdists.
func FindMetadataFile(directory string) (string, error) {
	var found string
	err := filepath.WalkDir(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		parent := filepath.Base(filepath.Dir(path))
		name := d.Name()
		if (name == "METADATA" && strings.HasSuffix(parent, ".dist-info")) ||
			(name == "PKG-INFO" && strings.HasSuffix(parent, ".egg-info")) {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", ErrNoMetadata
	}
	return found, nil
}

// RenderMetadataFile parses the email-style headers of a METADATA or
// PKG-INFO file and renders the common fields as aligned key/value lines.
func RenderMetadataFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	header, err := textproto.NewReader(bufio.NewReader(f)).ReadMIMEHeader()
	if err != nil && len(header) == 0 {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	fields := []utils.RenderField{
		{Name: "Name", Value: header.Get("Name")},
		{Name: "Version", Value: header.Get("Version")},
		{Name: "Summary", Value: header.Get("Summary")},
		{Name: "Home-page", Value: header.Get("Home-Page")},
		{Name: "Author", Value: header.Get("Author")},
		{Name: "Author-email", Value: header.Get("Author-Email")},
		{Name: "License", Value: header.Get("License")},
		{Name: "Classifiers", Multi: true, Values: header.Values("Classifier")},
		{Name: "Requires", Multi: true, Values: header.Values("Requires-Dist")},
	}
	return utils.RenderFields(fields), nil
}

// RenderPackageMetadata renders the metadata of the unpacked package below
// directory.
func RenderPackageMetadata(directory string) (string, error) {
	path, err := FindMetadataFile(directory)
	if err != nil {
		return "", err
	}
	return RenderMetadataFile(path)
}

// DownloadPackage resolves a package definition ("name" or
// "name==version") through pip into targetDirectory and returns the path
// of the downloaded distribution file. Pip's diagnostics go to stderr
// unmodified. With preferSdist set, binary wheels are rejected.
func DownloadPackage(ctx context.Context, definition, indexURL string, preferSdist bool, targetDirectory string) (string, error) {
	pip, err := exec.LookPath("pip")
	if err != nil {
		return "", errors.New("pip not found")
	}

	args := []string{"download", "--no-deps", "--dest", targetDirectory}
	if indexURL != "" {
		args = append(args, "--index-url", indexURL)
	}
	if preferSdist {
		args = append(args, "--no-binary", ":all:")
	}
	args = append(args, definition)

	logger.Debugf("Running pip %s", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, pip, args...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("pip download failed for %s: %w", definition, err)
	}

	entries, err := os.ReadDir(targetDirectory)
	if err != nil {
		return "", err
	}
	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, filepath.Join(targetDirectory, entry.Name()))
		}
	}
	if len(files) != 1 {
		return "", fmt.Errorf("expected exactly one download for %s, got %d", definition, len(files))
	}
	return files[0], nil
}
