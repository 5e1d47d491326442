package retrieval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"licensetools/archive"
	"licensetools/cargo"
	"licensetools/detector"
	"licensetools/fonts"
	"licensetools/linking"
	"licensetools/logger"
	"licensetools/metadata"
	"licensetools/rpmmeta"
	"licensetools/utils"
)

// sideChannel serializes free-form metadata renderings (cargo manifests,
// ldd output, font and image metadata) that accompany the structured
// per-file results.
type sideChannel struct {
	mu sync.Mutex
	w  io.Writer
}

func newSideChannel(w io.Writer) *sideChannel {
	if w == nil {
		w = os.Stdout
	}
	return &sideChannel{w: w}
}

func (s *sideChannel) emit(shortPath, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\n%s:\n%s\n", shortPath, text)
}

type analyzer struct {
	flags Flags
	side  *sideChannel
}

// analyzeFile dispatches one file to its handler. First match wins:
// archives are peeked only (extraction is the orchestrator's job), then
// the special-format branches, then the generic detector.
func (a *analyzer) analyzeFile(ctx context.Context, path, shortPath string) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if archive.CanExtract(path) {
		if strings.HasSuffix(strings.ToLower(path), ".rpm") {
			if pkg, err := rpmmeta.ReadPackage(path); err == nil && pkg.License != "" {
				return newDeclaredLicenseResult(path, shortPath, pkg.License), nil
			}
		}
		return newPlaceholderResult(path, shortPath), nil
	}

	if a.flags.Has(FlagCargoMetadata) && strings.HasPrefix(filepath.Base(path), "Cargo.toml") {
		rendered, err := cargo.RenderManifest(path)
		if err != nil {
			return nil, err
		}
		a.side.emit(shortPath, rendered)
	}

	if a.flags.Has(FlagLDDData) && linking.IsELF(path) {
		if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
			logger.Warnf("Skipping linkage analysis for symlink %s", shortPath)
		} else {
			output, err := linking.ResolveLinkage(ctx, path)
			if err != nil {
				return nil, err
			}
			// Statically linked binaries yield no output and keep
			// going through the remaining branches.
			if output != "" {
				a.side.emit(shortPath, output)
				return newPlaceholderResult(path, shortPath), nil
			}
			logger.Debugf("No linkage resolved for %s", shortPath)
		}
	}

	if a.flags.Has(FlagFontData) && fonts.IsFontFile(path) {
		rendered, err := fonts.RenderFontMetadata(path)
		if err == nil {
			a.side.emit(shortPath, rendered)
			return newPlaceholderResult(path, shortPath), nil
		}
		logger.Debugf("No font metadata for %s: %v", shortPath, err)
	}

	if a.flags.Has(FlagImageMetadata) {
		mimeType, err := utils.MimeType(path)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(mimeType, "image/") || mimeType == "application/pdf" {
			rendered, err := metadata.RenderDocumentMetadata(path, mimeType)
			if err == nil {
				a.side.emit(shortPath, rendered)
				return newPlaceholderResult(path, shortPath), nil
			}
			if !errors.Is(err, metadata.ErrNoMetadata) {
				logger.Debugf("No document metadata for %s: %v", shortPath, err)
			}
		}
	}

	return a.analyzeGeneric(path, shortPath)
}

// analyzeGeneric runs the content detector. Licenses are always retrieved
// here; the other categories follow the flag mask.
func (a *analyzer) analyzeGeneric(path, shortPath string) (*FileResult, error) {
	analysis, err := detector.Detect(path, detector.Options{
		Copyrights: a.flags.Has(FlagCopyrights),
		Emails:     a.flags.Has(FlagEmails),
		URLs:       a.flags.Has(FlagURLs),
		Licenses:   true,
		FileInfo:   a.flags.Has(FlagFileInfo),
	})
	if err != nil {
		return nil, err
	}
	return &FileResult{
		Path:       path,
		ShortPath:  shortPath,
		Copyrights: analysis.Copyrights,
		Emails:     analysis.Emails,
		URLs:       analysis.URLs,
		Licenses:   analysis.Licenses,
		FileInfo:   analysis.FileInfo,
	}, nil
}
