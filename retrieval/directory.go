package retrieval

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"licensetools/archive"
	"licensetools/logger"
	"licensetools/utils"
)

// Options controls a retrieval run.
type Options struct {
	Flags    Flags
	JobCount int

	// Unpack directory policy for nested archives.
	AllowRandomDirFallback bool
	DeleteUnpackedDirs     bool

	// MaxArchiveDepth bounds nested archive recursion; zero means
	// unbounded.
	MaxArchiveDepth int

	// Python package resolution.
	IndexURL    string
	PreferSdist bool

	// Output receives the report, SideOutput the free-form metadata
	// renderings. Both default to stdout.
	Output     io.Writer
	SideOutput io.Writer
}

func (o Options) jobCount() int {
	if o.JobCount > 0 {
		return o.JobCount
	}
	return 4
}

// frame is one unit of the traversal worklist: either a directory to
// scan, an archive to unpack and scan, or a cleanup sentinel that removes
// an unpack directory once its whole subtree has been processed.
type frame struct {
	dir     string
	prefix  string
	archive string
	depth   int
	cleanup *utils.FixedNameDir
}

// runOnDirectory scans the tree depth-first. Files of each directory level
// are analyzed in parallel but emitted in walk order; nested archives are
// unpacked lazily in lexicographic order and their trees scanned before
// the next sibling archive.
func runOnDirectory(ctx context.Context, directory, prefix string, opts Options) ([]*FileResult, error) {
	a := &analyzer{flags: opts.Flags, side: newSideChannel(opts.SideOutput)}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Analyzing files"),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetVisibility(progressVisible()),
		progressbar.OptionSetWriter(os.Stderr),
	)
	defer bar.Finish()

	var results []*FileResult
	stack := []frame{{dir: directory, prefix: prefix}}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.cleanup != nil {
			if err := current.cleanup.Cleanup(); err != nil {
				return nil, err
			}
			continue
		}

		dir := current.dir
		if current.archive != "" {
			unpack := &utils.FixedNameDir{
				Directory:        filepath.Join(filepath.Dir(current.archive), archive.UnpackDirName(current.archive)),
				FallbackToRandom: opts.AllowRandomDirFallback,
				DeleteAfterwards: opts.DeleteUnpackedDirs,
			}
			created, err := unpack.Create()
			if err != nil {
				return nil, err
			}
			if opts.DeleteUnpackedDirs {
				stack = append(stack, frame{cleanup: unpack})
			}
			logger.Debugf("Unpacking %s into %s", current.archive, created)
			if err := archive.Extract(current.archive, created, false); err != nil {
				return nil, err
			}
			dir = created
		}

		entries, err := utils.FilesFromDirectory(dir, current.prefix)
		if err != nil {
			return nil, err
		}

		levelResults, err := analyzeParallel(ctx, a, entries, opts.jobCount(), bar)
		if err != nil {
			return nil, err
		}
		results = append(results, levelResults...)

		// Child archives pushed in reverse so the lexicographically
		// first one is processed first, subtree included, before its
		// siblings.
		var children []frame
		for _, entry := range entries {
			if !archive.CanExtract(entry.Path) {
				continue
			}
			if opts.MaxArchiveDepth > 0 && current.depth+1 > opts.MaxArchiveDepth {
				logger.Warnf("Skipping %s: archive nesting exceeds depth %d", entry.ShortPath, opts.MaxArchiveDepth)
				continue
			}
			children = append(children, frame{
				archive: entry.Path,
				prefix:  current.prefix,
				depth:   current.depth + 1,
			})
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return results, nil
}

// analyzeParallel fans the entries of one directory level out to the
// worker pool. Results keep submission order; the first worker error
// aborts the batch.
func analyzeParallel(ctx context.Context, a *analyzer, entries []utils.FileEntry, jobs int, bar *progressbar.ProgressBar) ([]*FileResult, error) {
	results := make([]*FileResult, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			result, err := a.analyzeFile(gctx, entry.Path, entry.ShortPath)
			if err != nil {
				return err
			}
			results[i] = result
			_ = bar.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func progressVisible() bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv("LICENSETOOLS_DISABLE_PROGRESS")))
	return value != "1" && value != "true" && value != "yes" && value != "on"
}
