package retrieval

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"licensetools/logger"
)

// Source names the single input of a run. Exactly one field may be set.
type Source struct {
	Directory string
	File      string
	Archive   string
	URL       string
	Package   string
}

func (s Source) count() int {
	n := 0
	for _, v := range []string{s.Directory, s.File, s.Archive, s.URL, s.Package} {
		if v != "" {
			n++
		}
	}
	return n
}

// ErrAmbiguousSource is returned when not exactly one source is given.
var ErrAmbiguousSource = errors.New("exactly one source must be given")

// Run analyzes the given source, renders the report and returns the
// per-file results in traversal order.
func Run(ctx context.Context, source Source, opts Options) ([]*FileResult, error) {
	if source.count() != 1 {
		return nil, ErrAmbiguousSource
	}

	// Python package metadata only exists for resolved package
	// definitions.
	if opts.Flags.Has(FlagPythonMetadata) && source.Package == "" && source.Archive == "" && source.URL == "" {
		logger.Debugf("Ignoring python metadata flag without a package source")
		opts.Flags &^= FlagPythonMetadata
	}

	var results []*FileResult
	var err error
	switch {
	case source.Directory != "":
		results, err = runOnDirectory(ctx, source.Directory, source.Directory, opts)
	case source.File != "":
		a := &analyzer{flags: opts.Flags, side: newSideChannel(opts.SideOutput)}
		var result *FileResult
		result, err = a.analyzeFile(ctx, source.File, source.File)
		if result != nil {
			results = []*FileResult{result}
		}
	case source.Archive != "":
		results, err = runOnPackageArchive(ctx, source.Archive, opts)
	case source.URL != "":
		results, err = runOnDownloadedArchive(ctx, source.URL, opts)
	case source.Package != "":
		results, err = runOnDownloadedPackage(ctx, source.Package, opts)
	}
	if err != nil {
		return nil, err
	}

	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	RenderReport(output, results)
	return results, nil
}

// RenderReport writes the per-file license table followed by the
// expression histogram.
func RenderReport(w io.Writer, results []*FileResult) {
	width := 0
	for _, result := range results {
		if len(result.ShortPath) > width {
			width = len(result.ShortPath)
		}
	}

	for _, result := range results {
		expression := result.LicenseExpression()
		if result.Licenses != nil && len(result.Licenses.ScoresOfDetectedExpression()) > 0 {
			fmt.Fprintf(w, "%-*s %s %v\n", width, result.ShortPath, expression, result.Licenses.ScoresOfDetectedExpression())
		} else {
			fmt.Fprintf(w, "%-*s %s\n", width, result.ShortPath, expression)
		}
	}

	histogram := make(map[string]int)
	for _, result := range results {
		histogram[result.LicenseExpression()]++
	}
	expressions := make([]string, 0, len(histogram))
	expressionWidth := 0
	for expression := range histogram {
		expressions = append(expressions, expression)
		if len(expression) > expressionWidth {
			expressionWidth = len(expression)
		}
	}
	sort.Strings(expressions)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "License histogram:")
	for _, expression := range expressions {
		fmt.Fprintf(w, "  %-*s %d\n", expressionWidth, expression, histogram[expression])
	}
}
