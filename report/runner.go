package report

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	openapidiff "github.com/x3t/openapi-diff"
	"github.com/x3t/openapi-diff/differ"
	"github.com/x3t/openapi-diff/internal/fileutil"
	"github.com/x3t/openapi-diff/oaserrors"
	"github.com/x3t/openapi-diff/parser"
	"github.com/x3t/openapi-diff/renderer"
)

// Comparator produces the comparison result for two document locations.
// *differ.Differ satisfies it.
type Comparator interface {
	Compare(ctx context.Context, original, revised string) (*differ.DiffResult, error)
}

// ComparatorFunc adapts a function to the Comparator interface.
type ComparatorFunc func(ctx context.Context, original, revised string) (*differ.DiffResult, error)

// Compare calls f(ctx, original, revised).
func (f ComparatorFunc) Compare(ctx context.Context, original, revised string) (*differ.DiffResult, error) {
	return f(ctx, original, revised)
}

// Runner compares two documents and writes the configured reports.
// A Runner holds no per-run state and may be reused.
type Runner struct {
	comparator Comparator
	registry   *renderer.Registry
	logger     parser.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithComparator replaces the default differ.
func WithComparator(c Comparator) Option {
	return func(r *Runner) {
		r.comparator = c
	}
}

// WithRegistry replaces the default format registry.
func WithRegistry(reg *renderer.Registry) Option {
	return func(r *Runner) {
		r.registry = reg
	}
}

// WithLogger sets the structured logger.
func WithLogger(l parser.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// New creates a Runner. Without options it compares with a default
// differ.Differ and renders the five built-in formats.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = parser.NopLogger{}
	}
	if r.registry == nil {
		r.registry = renderer.DefaultRegistry()
	}
	if r.comparator == nil {
		r.comparator = &differ.Differ{UserAgent: openapidiff.UserAgent(), Logger: r.logger}
	}
	return r
}

// Run executes one comparison:
//
//  1. apply defaults and validate cfg
//  2. resolve the report base and create its directory
//  3. compare the documents exactly once
//  4. write one report per enabled format, continuing past failures
//  5. evaluate both fail gates
//
// Configuration, I/O and comparison failures abort the run and are returned
// as *oaserrors.ConfigError, *oaserrors.IOError and *oaserrors.ComparisonError.
// Report failures are recorded per format in the Outcome.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Outcome, error) {
	cfg = cfg.withDefaults(r.registry)
	if err := cfg.validate(r.registry); err != nil {
		return nil, err
	}

	base := cfg.ReportBase()
	if err := ensureDirs(base, cfg.OutputDir); err != nil {
		return nil, err
	}

	r.logger.Debug("comparing documents", "original", cfg.OriginalLocation, "new", cfg.NewLocation)
	result, err := r.comparator.Compare(ctx, cfg.OriginalLocation, cfg.NewLocation)
	if err != nil {
		var cmpErr *oaserrors.ComparisonError
		if errors.As(err, &cmpErr) {
			return nil, err
		}
		return nil, &oaserrors.ComparisonError{Cause: err}
	}
	if result == nil {
		return nil, &oaserrors.ComparisonError{Cause: errors.New("comparator returned no result")}
	}
	r.logger.Info("comparison complete",
		"changes", len(result.Changes), "breaking", result.BreakingCount,
		"warnings", result.WarningCount, "info", result.InfoCount)

	out := &Outcome{
		ReportBase: base,
		Result:     result,
		Renders:    r.renderAll(ctx, base, cfg.Formats, result, cfg.Parallel),
	}
	out.ChangeGate, out.IncompatibleGate = evaluateGates(cfg, result)
	return out, nil
}

// Run compares with a default Runner.
func Run(ctx context.Context, cfg Config) (*Outcome, error) {
	return New().Run(ctx, cfg)
}

func ensureDirs(base, outputDir string) error {
	for _, dir := range []string{filepath.Dir(base), outputDir} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, fileutil.ReportDirMode); err != nil {
			return &oaserrors.IOError{Op: "mkdir", Path: dir, Cause: err}
		}
	}
	return nil
}

// renderAll writes every format. Results are stored by index so their order
// does not depend on scheduling.
func (r *Runner) renderAll(ctx context.Context, base string, formats []renderer.Format, result *differ.DiffResult, parallel bool) []RenderResult {
	results := make([]RenderResult, len(formats))
	if !parallel || len(formats) < 2 {
		for i, f := range formats {
			results[i] = r.renderOne(ctx, base, f, result)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range formats {
		g.Go(func() error {
			results[i] = r.renderOne(ctx, base, f, result)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (r *Runner) renderOne(ctx context.Context, base string, f renderer.Format, result *differ.DiffResult) RenderResult {
	entry, _ := r.registry.Lookup(f)
	res := RenderResult{Format: f, Path: base + entry.Extension}

	err := ctx.Err()
	if err == nil {
		r.logger.Debug("writing report", "format", f, "path", res.Path)
		err = writeReport(res.Path, entry.Renderer, result)
	}
	if err != nil {
		res.Err = &oaserrors.RenderError{Format: string(f), Path: res.Path, Cause: err}
		r.logger.Warn("report failed", "format", f, "path", res.Path, "error", err)
	}
	return res
}

// writeReport renders into path, replacing any previous content.
func writeReport(path string, rend renderer.Renderer, result *differ.DiffResult) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileutil.ReportFileMode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("report: renderer panicked: %v", p)
		}
	}()

	w := bufio.NewWriter(file)
	if err := rend.Render(w, result); err != nil {
		return err
	}
	return w.Flush()
}
