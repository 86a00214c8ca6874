package mcpserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/x3t/openapi-diff/oaserrors"
	"github.com/x3t/openapi-diff/renderer"
	"github.com/x3t/openapi-diff/report"
)

type diffReportInput struct {
	Original           string   `json:"original"                       jsonschema:"File path or http(s) URL of the original OAS document"`
	New                string   `json:"new"                            jsonschema:"File path or http(s) URL of the new OAS document"`
	Formats            []string `json:"formats,omitempty"              jsonschema:"Report formats to write: html, json, text, markdown, asciidoc. Empty runs the comparison only"`
	ReportName         string   `json:"report_name,omitempty"          jsonschema:"Report path; everything from the first dot is replaced by each format's extension"`
	OutputDir          string   `json:"output_dir,omitempty"           jsonschema:"Directory for the reports when report_name is empty"`
	FailOnChange       bool     `json:"fail_on_change,omitempty"       jsonschema:"Mark the run failed when the documents differ"`
	FailOnIncompatible bool     `json:"fail_on_incompatible,omitempty" jsonschema:"Mark the run failed when a change breaks backward compatibility"`
}

type renderOutput struct {
	Format string `json:"format"`
	Path   string `json:"path"`
	Error  string `json:"error,omitempty"`
}

type gateOutput struct {
	Name      string `json:"name"`
	Enabled   bool   `json:"enabled"`
	Triggered bool   `json:"triggered"`
	Reason    string `json:"reason,omitempty"`
}

type diffReportOutput struct {
	Unchanged     bool           `json:"unchanged"`
	Compatible    bool           `json:"compatible"`
	TotalChanges  int            `json:"total_changes"`
	BreakingCount int            `json:"breaking_count"`
	WarningCount  int            `json:"warning_count"`
	InfoCount     int            `json:"info_count"`
	ReportBase    string         `json:"report_base"`
	Renders       []renderOutput `json:"renders,omitempty"`
	Gates         []gateOutput   `json:"gates"`
	Failed        bool           `json:"failed"`
	Summary       string         `json:"summary"`
}

func (h *handlers) handleDiffReport(ctx context.Context, _ *mcp.CallToolRequest, input diffReportInput) (*mcp.CallToolResult, diffReportOutput, error) {
	cfg, err := h.reportConfig(input)
	if err != nil {
		return errResult(err), diffReportOutput{}, nil
	}

	runner := report.New(
		report.WithComparator(h.comparator),
		report.WithRegistry(h.registry),
		report.WithLogger(h.logger),
	)
	outcome, err := runner.Run(ctx, cfg)
	if err != nil {
		return errResult(err), diffReportOutput{}, nil
	}
	return nil, newDiffReportOutput(outcome), nil
}

func (h *handlers) reportConfig(input diffReportInput) (report.Config, error) {
	formats := make([]renderer.Format, 0, len(input.Formats))
	for _, name := range input.Formats {
		f, err := h.registry.Parse(name)
		if err != nil {
			return report.Config{}, &oaserrors.ConfigError{Option: "formats", Value: name, Cause: err}
		}
		formats = append(formats, f)
	}
	outputDir := input.OutputDir
	if outputDir == "" {
		outputDir = h.cfg.OutputDir
	}
	return report.Config{
		OriginalLocation:   input.Original,
		NewLocation:        input.New,
		ReportName:         input.ReportName,
		OutputDir:          outputDir,
		Formats:            formats,
		FailOnChange:       input.FailOnChange,
		FailOnIncompatible: input.FailOnIncompatible,
		Parallel:           h.cfg.Parallel,
	}, nil
}

func newDiffReportOutput(o *report.Outcome) diffReportOutput {
	res := o.Result
	out := diffReportOutput{
		Unchanged:     res.IsUnchanged(),
		Compatible:    res.IsCompatible(),
		TotalChanges:  len(res.Changes),
		BreakingCount: res.BreakingCount,
		WarningCount:  res.WarningCount,
		InfoCount:     res.InfoCount,
		ReportBase:    o.ReportBase,
		Renders:       makeSlice[renderOutput](len(o.Renders)),
		Gates: []gateOutput{
			gate("fail_on_change", o.ChangeGate),
			gate("fail_on_incompatible", o.IncompatibleGate),
		},
		Failed: o.Failed(),
	}
	for _, r := range o.Renders {
		ro := renderOutput{Format: r.Format.String(), Path: r.Path}
		if r.Err != nil {
			ro.Error = sanitizeError(r.Err)
		}
		out.Renders = append(out.Renders, ro)
	}
	out.Summary = buildSummary(out, len(o.RenderErrors()))
	return out
}

func gate(name string, g report.GateResult) gateOutput {
	return gateOutput{Name: name, Enabled: g.Enabled, Triggered: g.Triggered, Reason: g.Reason}
}

func buildSummary(out diffReportOutput, failedRenders int) string {
	var summary string
	switch {
	case out.Unchanged:
		summary = "No changes detected."
	case out.Compatible:
		summary = formatCount(out.TotalChanges, "change") + " found, all backward compatible."
	default:
		summary = fmt.Sprintf("Breaking changes detected. %s found (%s).",
			formatCount(out.TotalChanges, "change"), formatCount(out.BreakingCount, "breaking change"))
	}
	if written := len(out.Renders) - failedRenders; written > 0 {
		summary += " Wrote " + formatCount(written, "report") + "."
	}
	if failedRenders > 0 {
		summary += " " + formatCount(failedRenders, "report") + " failed."
	}
	if out.Failed {
		summary += " Fail gate triggered."
	}
	return summary
}

func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}
