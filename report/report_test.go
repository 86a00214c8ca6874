package report

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x3t/openapi-diff/differ"
	"github.com/x3t/openapi-diff/oaserrors"
	"github.com/x3t/openapi-diff/renderer"
)

var allFormats = []renderer.Format{
	renderer.FormatHTML, renderer.FormatJSON, renderer.FormatText,
	renderer.FormatMarkdown, renderer.FormatAsciiDoc,
}

func unchanged() *differ.DiffResult {
	return &differ.DiffResult{Changes: []differ.Change{}}
}

func compatible() *differ.DiffResult {
	return &differ.DiffResult{
		Changes: []differ.Change{{
			Path: "components.schemas.Pet.properties.color", Type: differ.ChangeTypeAdded,
			Category: differ.CategorySchema, Severity: differ.SeverityInfo, Message: "property color added",
		}},
		InfoCount: 1,
	}
}

func incompatible() *differ.DiffResult {
	return &differ.DiffResult{
		Changes: []differ.Change{{
			Path: "components.schemas.Pet.properties.name", Type: differ.ChangeTypeRemoved,
			Category: differ.CategorySchema, Severity: differ.SeverityError, Message: "property name removed",
		}},
		BreakingCount: 1,
	}
}

// stubComparator returns result and counts calls.
func stubComparator(result *differ.DiffResult, calls *atomic.Int32) ComparatorFunc {
	return func(context.Context, string, string) (*differ.DiffResult, error) {
		calls.Add(1)
		return result, nil
	}
}

func baseConfig(dir string, formats ...renderer.Format) Config {
	return Config{
		OriginalLocation: "old.yaml",
		NewLocation:      "new.yaml",
		OutputDir:        dir,
		Formats:          formats,
	}
}

func TestResolveReportBase(t *testing.T) {
	tests := []struct {
		name       string
		reportName string
		outputDir  string
		want       string
	}{
		{"name with extension", "build/out.report", "ignored", "build/out"},
		{"name without extension", "reports/api", "ignored", "reports/api"},
		{"first dot wins", "v1.2/report", "", "v1"},
		{"output dir", "", "/tmp/b", filepath.Join("/tmp/b", "Openapi_Diff_Report")},
		{"default output dir", "", "", filepath.Join("build", "Openapi_Diff_Report")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveReportBase(tt.reportName, tt.outputDir))
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{Formats: []renderer.Format{renderer.FormatJSON, "pdf", renderer.FormatHTML, renderer.FormatJSON}}.WithDefaults()
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, []renderer.Format{renderer.FormatHTML, renderer.FormatJSON, "pdf"}, cfg.Formats)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		option string
	}{
		{"missing original", Config{NewLocation: "b.yaml"}, "originalFile"},
		{"missing new", Config{OriginalLocation: "a.yaml", NewLocation: "  "}, "newFile"},
		{"unknown format", Config{OriginalLocation: "a", NewLocation: "b", Formats: []renderer.Format{"pdf"}}, "formats"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			var cfgErr *oaserrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.option, cfgErr.Option)
		})
	}
	assert.NoError(t, Config{OriginalLocation: "a", NewLocation: "b", Formats: allFormats}.Validate())
}

func TestRunNoFormats(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	r := New(WithComparator(stubComparator(incompatible(), &calls)))

	out, err := r.Run(context.Background(), baseConfig(dir))
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, out.Renders)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, out.Failed())
}

func TestRunGates(t *testing.T) {
	tests := []struct {
		name               string
		result             *differ.DiffResult
		failOnChange       bool
		failOnIncompatible bool
		wantChange         bool
		wantIncompatible   bool
	}{
		{"unchanged, both gates", unchanged(), true, true, false, false},
		{"compatible, change gate", compatible(), true, false, true, false},
		{"compatible, incompatible gate", compatible(), false, true, false, false},
		{"compatible, both gates", compatible(), true, true, true, false},
		{"incompatible, no gates", incompatible(), false, false, false, false},
		{"incompatible, change gate", incompatible(), true, false, true, false},
		{"incompatible, incompatible gate", incompatible(), false, true, false, true},
		{"incompatible, both gates", incompatible(), true, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			cfg := baseConfig(t.TempDir())
			cfg.FailOnChange = tt.failOnChange
			cfg.FailOnIncompatible = tt.failOnIncompatible

			out, err := New(WithComparator(stubComparator(tt.result, &calls))).Run(context.Background(), cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.failOnChange, out.ChangeGate.Enabled)
			assert.Equal(t, tt.failOnIncompatible, out.IncompatibleGate.Enabled)
			assert.Equal(t, tt.wantChange, out.ChangeGate.Triggered)
			assert.Equal(t, tt.wantIncompatible, out.IncompatibleGate.Triggered)
			assert.Equal(t, tt.wantChange || tt.wantIncompatible, out.Failed())

			var want []string
			if tt.wantChange {
				want = append(want, ReasonChanged)
			}
			if tt.wantIncompatible {
				want = append(want, ReasonIncompatible)
			}
			assert.Equal(t, want, out.FailureReasons())
		})
	}
}

func TestRunWritesAllFormats(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	out, err := New(WithComparator(stubComparator(compatible(), &calls))).
		Run(context.Background(), baseConfig(dir, allFormats...))
	require.NoError(t, err)

	base := filepath.Join(dir, DefaultReportName)
	assert.Equal(t, base, out.ReportBase)
	require.Len(t, out.Renders, 5)
	for i, ext := range []string{".html", ".json", ".txt", ".md", ".adoc"} {
		assert.Equal(t, allFormats[i], out.Renders[i].Format)
		assert.Equal(t, base+ext, out.Renders[i].Path)
		assert.NoError(t, out.Renders[i].Err)
		assert.FileExists(t, base+ext)
	}
	assert.Empty(t, out.RenderErrors())
	assert.Len(t, out.Written(), 5)
	assert.Equal(t, int32(1), calls.Load())
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32
	r := New(WithComparator(stubComparator(incompatible(), &calls)))
	cfg := baseConfig(dir, allFormats...)

	read := func() map[string][]byte {
		files := make(map[string][]byte)
		for _, f := range allFormats {
			e, _ := renderer.DefaultRegistry().Lookup(f)
			data, err := os.ReadFile(filepath.Join(dir, DefaultReportName+e.Extension))
			require.NoError(t, err)
			files[string(f)] = data
		}
		return files
	}

	_, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)
	first := read()
	_, err = r.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first, read())
}

func TestRunTruncatesPreviousReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultReportName+".txt")
	require.NoError(t, os.WriteFile(path, make([]byte, 64*1024), 0o600))

	var calls atomic.Int32
	_, err := New(WithComparator(stubComparator(unchanged(), &calls))).
		Run(context.Background(), baseConfig(dir, renderer.FormatText))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\x00")
	assert.Contains(t, string(data), renderer.ResultUnchanged)
}

func TestRunReportName(t *testing.T) {
	t.Chdir(t.TempDir())
	var calls atomic.Int32
	cfg := baseConfig("", renderer.FormatJSON)
	cfg.ReportName = "build/out.report"

	out, err := New(WithComparator(stubComparator(compatible(), &calls))).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "build/out", out.ReportBase)
	assert.Equal(t, "build/out.json", out.Renders[0].Path)
	assert.FileExists(t, filepath.Join("build", "out.json"))
}

func TestRunCreatesOutputDirWithReportName(t *testing.T) {
	t.Chdir(t.TempDir())
	var calls atomic.Int32
	cfg := baseConfig("build", renderer.FormatJSON, renderer.FormatText)
	cfg.ReportName = "other/out.report"

	out, err := New(WithComparator(stubComparator(compatible(), &calls))).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "other/out", out.ReportBase)
	assert.FileExists(t, filepath.Join("other", "out.json"))
	assert.DirExists(t, "build")
	entries, err := os.ReadDir("build")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunRenderFailureIsolated(t *testing.T) {
	dir := t.TempDir()
	reg := renderer.NewRegistry()
	require.NoError(t, reg.Register(renderer.FormatHTML, ".html", renderer.RendererFunc(renderer.RenderHTML)))
	require.NoError(t, reg.Register(renderer.FormatJSON, ".json", renderer.RendererFunc(
		func(io.Writer, *differ.DiffResult) error { return errors.New("encoder exploded") })))

	for _, parallel := range []bool{false, true} {
		var calls atomic.Int32
		cfg := baseConfig(dir, renderer.FormatJSON, renderer.FormatHTML)
		cfg.Parallel = parallel

		out, err := New(WithRegistry(reg), WithComparator(stubComparator(compatible(), &calls))).
			Run(context.Background(), cfg)
		require.NoError(t, err)

		require.Len(t, out.Renders, 2)
		assert.Equal(t, renderer.FormatHTML, out.Renders[0].Format)
		assert.NoError(t, out.Renders[0].Err)
		assert.FileExists(t, out.Renders[0].Path)

		assert.Equal(t, renderer.FormatJSON, out.Renders[1].Format)
		var renderErr *oaserrors.RenderError
		require.True(t, errors.As(out.Renders[1].Err, &renderErr))
		assert.Equal(t, "json", renderErr.Format)
		assert.True(t, errors.Is(out.Renders[1].Err, oaserrors.ErrRender))
		assert.Len(t, out.RenderErrors(), 1)
	}
}

func TestRunRendererPanic(t *testing.T) {
	reg := renderer.NewRegistry()
	require.NoError(t, reg.Register("boom", ".boom", renderer.RendererFunc(
		func(io.Writer, *differ.DiffResult) error { panic("bad renderer") })))

	var calls atomic.Int32
	out, err := New(WithRegistry(reg), WithComparator(stubComparator(unchanged(), &calls))).
		Run(context.Background(), baseConfig(t.TempDir(), "boom"))
	require.NoError(t, err)
	require.Len(t, out.RenderErrors(), 1)
	assert.Contains(t, out.RenderErrors()[0].Error(), "bad renderer")
}

func TestRunParallelMatchesSequential(t *testing.T) {
	var calls atomic.Int32
	r := New(WithComparator(stubComparator(incompatible(), &calls)))

	seqDir, parDir := t.TempDir(), t.TempDir()
	seq, err := r.Run(context.Background(), baseConfig(seqDir, allFormats...))
	require.NoError(t, err)
	cfg := baseConfig(parDir, allFormats...)
	cfg.Parallel = true
	par, err := r.Run(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, par.Renders, len(seq.Renders))
	for i := range seq.Renders {
		assert.Equal(t, seq.Renders[i].Format, par.Renders[i].Format)
		a, err := os.ReadFile(seq.Renders[i].Path)
		require.NoError(t, err)
		b, err := os.ReadFile(par.Renders[i].Path)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestRunConfigError(t *testing.T) {
	var calls atomic.Int32
	_, err := New(WithComparator(stubComparator(unchanged(), &calls))).
		Run(context.Background(), Config{NewLocation: "b.yaml"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
	assert.Equal(t, int32(0), calls.Load())
}

func TestRunComparisonError(t *testing.T) {
	dir := t.TempDir()
	cause := errors.New("no such file")
	cmp := ComparatorFunc(func(context.Context, string, string) (*differ.DiffResult, error) {
		return nil, cause
	})

	_, err := New(WithComparator(cmp)).Run(context.Background(), baseConfig(dir, allFormats...))

	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrComparison))
	assert.True(t, errors.Is(err, cause))
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestRunIOError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	var calls atomic.Int32

	_, err := New(WithComparator(stubComparator(unchanged(), &calls))).
		Run(context.Background(), baseConfig(filepath.Join(blocker, "reports"), renderer.FormatJSON))

	require.Error(t, err)
	var ioErr *oaserrors.IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "mkdir", ioErr.Op)
	assert.Equal(t, int32(0), calls.Load())
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls atomic.Int32

	out, err := New(WithComparator(stubComparator(unchanged(), &calls))).
		Run(ctx, baseConfig(t.TempDir(), renderer.FormatText, renderer.FormatJSON))
	require.NoError(t, err)

	require.Len(t, out.RenderErrors(), 2)
	for _, e := range out.RenderErrors() {
		assert.True(t, errors.Is(e, context.Canceled))
	}
}
