package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"grok/internal/project"
)

// CheckFiles compiles every path concurrently up to opts.Stage. Results are
// in input order. jobs <= 0 uses GOMAXPROCS. progress may be nil.
func CheckFiles(ctx context.Context, paths []string, opts Options, jobs int, progress ProgressSink) ([]*Compilation, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// Observers are not required to be goroutine-safe.
	opts.Observer = nil
	for _, path := range paths {
		notify(progress, FileEvent{Path: path, Status: FileQueued})
	}

	results := make([]*Compilation, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			fileOpts := opts
			if progress != nil {
				fileOpts.Observer = func(ev PhaseEvent) {
					if ev.Status == PhaseStart {
						progress.FileProgress(FileEvent{Path: path, Phase: ev.Name, Status: FileWorking})
					}
				}
			}
			c, err := Compile(gctx, path, fileOpts)
			if err != nil || c.HasErrors() {
				notify(progress, FileEvent{Path: path, Status: FileFailed})
			} else {
				notify(progress, FileEvent{Path: path, Status: FileDone})
			}
			if err != nil {
				return err
			}
			results[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ExpandPaths replaces each directory in paths with the .grok files below
// it, sorted. Plain files are kept as given.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		var found []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == project.SourceExt {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
