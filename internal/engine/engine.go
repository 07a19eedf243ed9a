// Package engine drives the lint pipeline: discover files, load them, parse,
// dispatch rules, and merge per-file diagnostics into one deterministic
// report. Directory runs fan out across a bounded worker pool; every file
// owns its bag until the final merge, so the hot path takes no locks.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"swiftstyle/internal/cache"
	"swiftstyle/internal/diag"
	"swiftstyle/internal/observ"
	"swiftstyle/internal/rules"
	"swiftstyle/internal/source"
	"swiftstyle/internal/syntax"
	"swiftstyle/internal/walker"
)

// DefaultMaxDiagnostics caps the per-file bag when Options leaves it zero.
const DefaultMaxDiagnostics = 256

type Options struct {
	// Registry supplies the active rules and the cache fingerprint. Required.
	Registry *rules.Registry
	// MaxDiagnostics bounds each file's bag; 0 means DefaultMaxDiagnostics.
	MaxDiagnostics int
	// Jobs limits worker goroutines; 0 means GOMAXPROCS.
	Jobs int
	// Exclude patterns are applied while expanding directories.
	Exclude []string
	// Cache holds prior results; nil disables caching.
	Cache *cache.Store
	// NoWarnings drops warning diagnostics after collection.
	NoWarnings bool
	// WarningsAsErrors upgrades warning diagnostics after collection.
	WarningsAsErrors bool
	// Progress receives per-file pipeline events; nil disables them.
	Progress ProgressSink
	// Timer records pipeline phase durations; nil disables timing.
	Timer *observ.Timer
}

// FileResult is the outcome for a single file.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Bag         *diag.Bag
	ParseFailed bool
	LoadFailed  bool
	FromCache   bool
	Elapsed     time.Duration
}

// Result is the merged outcome of a run.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Bag holds all diagnostics after severity policy, sort, and dedup.
	Bag *diag.Bag
}

// ExitCode maps the run outcome to the process exit status: 2 for any
// internal failure (unreadable file, unparseable file, crashed rule), 1 for
// error-severity diagnostics, 0 otherwise. Internal failures win over plain
// errors.
func (r *Result) ExitCode() int {
	for i := range r.Files {
		if r.Files[i].LoadFailed || r.Files[i].ParseFailed {
			return 2
		}
	}
	if r.Bag.HasInternal() {
		return 2
	}
	if r.Bag.HasErrors() {
		return 1
	}
	return 0
}

// CheckFile lints one already-loaded file. The context is consulted once up
// front; a canceled context yields an empty result.
func CheckFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) FileResult {
	if ctx.Err() != nil {
		return FileResult{Path: file.Path, FileID: file.ID, Bag: diag.NewBag(0)}
	}
	return checkOne(fs, file, opts)
}

func checkOne(fs *source.FileSet, file *source.File, opts Options) FileResult {
	began := time.Now()
	maxDiags := opts.MaxDiagnostics
	if maxDiags <= 0 {
		maxDiags = DefaultMaxDiagnostics
	}
	res := FileResult{Path: file.Path, FileID: file.ID}

	fingerprint := opts.Registry.Fingerprint()
	useCache := opts.Cache != nil && file.Flags&source.FileVirtual == 0
	var key cache.Key
	if useCache {
		key = cache.KeyFor(file.Hash, fingerprint)
		if entry, ok, err := opts.Cache.Get(key); err == nil && ok {
			bag := diag.NewBag(maxDiags)
			for _, d := range entry.Hydrate(file.ID) {
				if !bag.Add(d) {
					break
				}
			}
			res.Bag = bag
			res.ParseFailed = entry.ParseFailed
			res.FromCache = true
			res.Elapsed = time.Since(began)
			return res
		}
		// Get errors, corrupt entries included, fall through to a fresh lint.
	}

	maxErrors, err := safecast.Conv[uint](maxDiags)
	if err != nil {
		panic(fmt.Errorf("max diagnostics overflow: %w", err))
	}

	bag := diag.NewBag(maxDiags)
	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	parsed := syntax.ParseFile(fs, file, syntax.Options{
		MaxErrors: maxErrors,
		Reporter:  diag.BagReporter{Bag: bag},
	})
	if parsed.Failed {
		// The tree cannot be trusted; rules would report nonsense.
		res.ParseFailed = true
	} else {
		emit(opts.Progress, Event{File: file.Path, Stage: StageCheck, Status: StatusWorking})
		walker.Walk(fs, file, parsed.Tree, opts.Registry, diag.BagReporter{Bag: bag})
	}
	res.Bag = bag
	res.Elapsed = time.Since(began)

	if useCache && !bag.HasInternal() {
		// Best effort: a failed write costs one re-lint next run.
		_ = opts.Cache.Put(key, cache.Pack(bag.Items(), res.ParseFailed, fingerprint))
	}
	return res
}

// CheckMany expands args into files and lints them concurrently. Per-file
// results land in a fixed slot each, so no ordering depends on goroutine
// scheduling; the merged bag is sorted and deduplicated at the end. On
// cancellation the already-finished results remain valid and are returned
// alongside the context error.
func CheckMany(ctx context.Context, args []string, opts Options) (*Result, error) {
	t := opts.Timer

	phase := t.Begin("discover")
	files, err := Discover(args, opts.Exclude)
	t.End(phase, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}

	fileSet := source.NewFileSet()
	out := &Result{FileSet: fileSet}
	if len(files) == 0 {
		out.Bag = diag.NewBag(0)
		return out, nil
	}

	// FileSet is not synchronized, so every file loads before the fan-out
	// and workers only read.
	phase = t.Begin("load")
	ids := make(map[string]source.FileID, len(files))
	loadErrs := make(map[string]error)
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrs[path] = err
			// Empty placeholder so the I/O diagnostic has a file to point at.
			ids[path] = fileSet.AddVirtual(path, nil)
			continue
		}
		ids[path] = id
	}
	t.End(phase, "")

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FileResult, len(files))

	phase = t.Begin("lint")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrs[path]; failed {
				bag := diag.NewBag(1)
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Primary:  source.Span{File: ids[path]},
					Message:  fmt.Sprintf("cannot read %s: %v", path, loadErr),
				})
				results[i] = FileResult{Path: path, FileID: ids[path], Bag: bag, LoadFailed: true}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			res := checkOne(fileSet, fileSet.Get(ids[path]), opts)
			results[i] = res

			status := StatusDone
			if res.ParseFailed {
				status = StatusError
			}
			emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: status, Elapsed: res.Elapsed})
			return nil
		})
	}
	waitErr := g.Wait()
	t.End(phase, "")

	phase = t.Begin("merge")
	total := 0
	for i := range results {
		if results[i].Bag != nil {
			total += results[i].Bag.Len()
		}
	}
	merged := diag.NewBag(total)
	for i := range results {
		// Slots of canceled workers stay empty.
		if results[i].Bag == nil {
			continue
		}
		merged.Merge(results[i].Bag)
		out.Files = append(out.Files, results[i])
	}
	out.Bag = finishBag(merged, opts)
	t.End(phase, fmt.Sprintf("%d diagnostics", out.Bag.Len()))

	return out, waitErr
}

// finishBag applies the severity policy, then sorts and deduplicates.
// Sorting first puts same-span duplicates next to each other with the higher
// severity in front, so keep-first dedup keeps the stronger one.
func finishBag(merged *diag.Bag, opts Options) *diag.Bag {
	items := merged.Items()
	out := diag.NewBag(len(items))
	for _, d := range items {
		switch {
		case d.Severity != diag.SevWarning:
		case opts.NoWarnings:
			continue
		case opts.WarningsAsErrors:
			d.Severity = diag.SevError
		}
		out.Add(d)
	}
	out.Sort()
	out.Dedup()
	return out
}
