package cliutil

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/x3t/openapi-diff/differ"
	"github.com/x3t/openapi-diff/oaserrors"
	"github.com/x3t/openapi-diff/renderer"
	"github.com/x3t/openapi-diff/report"
)

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s: %d items", "Status", 42)
	if got, want := buf.String(), "Status: 42 items"; got != want {
		t.Errorf("Writef() = %q, want %q", got, want)
	}
}

type errorWriter struct{}

func (errorWriter) Write([]byte) (int, error) { return 0, errors.New("simulated write error") }

func TestWritef_WriteError(t *testing.T) {
	// Should not panic
	Writef(errorWriter{}, "This will fail")
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "change"); got != "change" {
		t.Errorf("Plural(1) = %q", got)
	}
	if got := Plural(0, "change"); got != "changes" {
		t.Errorf("Plural(0) = %q", got)
	}
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	if !IsColorEnabled(ColorAlways, &buf) {
		t.Error("always should enable color")
	}
	if IsColorEnabled(ColorNever, &buf) {
		t.Error("never should disable color")
	}
	if IsColorEnabled(ColorAuto, &buf) {
		t.Error("auto should disable color for a non-terminal writer")
	}
}

func outcome(result *differ.DiffResult, renders ...report.RenderResult) *report.Outcome {
	return &report.Outcome{Result: result, Renders: renders}
}

func TestSummary(t *testing.T) {
	s := NewStyles(false)
	result := &differ.DiffResult{
		Changes:       make([]differ.Change, 3),
		BreakingCount: 1, WarningCount: 1, InfoCount: 1,
	}
	out := outcome(result,
		report.RenderResult{Format: renderer.FormatHTML, Path: "build/r.html"},
		report.RenderResult{Format: renderer.FormatJSON, Path: "build/r.json",
			Err: &oaserrors.RenderError{Format: "json", Cause: errors.New("disk full")}},
	)
	out.IncompatibleGate = report.GateResult{Enabled: true, Triggered: true, Reason: report.ReasonIncompatible}

	got := s.Summary(out)
	for _, want := range []string{
		"3 changes (1 breaking, 1 warning, 1 info)",
		"API changes broke backward compatibility",
		"✓ html     build/r.html",
		"✗ json",
		"disk full",
		"FAILED: " + report.ReasonIncompatible,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary() missing %q in:\n%s", want, got)
		}
	}
}

func TestSummaryUnchanged(t *testing.T) {
	got := NewStyles(false).Summary(outcome(&differ.DiffResult{}))
	if !strings.Contains(got, "No differences") {
		t.Errorf("Summary() = %q", got)
	}
}

func TestExitCode(t *testing.T) {
	gate := outcome(&differ.DiffResult{})
	gate.ChangeGate = report.GateResult{Triggered: true}
	renderFail := outcome(&differ.DiffResult{}, report.RenderResult{Err: errors.New("x")})
	both := outcome(&differ.DiffResult{}, report.RenderResult{Err: errors.New("x")})
	both.IncompatibleGate = report.GateResult{Triggered: true}

	tests := []struct {
		name string
		out  *report.Outcome
		err  error
		want int
	}{
		{"success", outcome(&differ.DiffResult{}), nil, ExitOK},
		{"no outcome", nil, nil, ExitOK},
		{"gate", gate, nil, ExitGate},
		{"render failed", renderFail, nil, ExitRenderFailed},
		{"gate wins over render", both, nil, ExitGate},
		{"usage", nil, &UsageError{Err: errors.New("bad flag")}, ExitUsage},
		{"config", nil, &oaserrors.ConfigError{Option: "formats"}, ExitConfig},
		{"comparison", nil, fmt.Errorf("run: %w", &oaserrors.ComparisonError{Side: "new"}), ExitComparison},
		{"io", nil, &oaserrors.IOError{Op: "mkdir"}, ExitIO},
		{"internal", nil, errors.New("boom"), ExitInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.out, tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
