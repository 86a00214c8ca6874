package cliutil

import (
	"fmt"
	"strings"

	"github.com/x3t/openapi-diff/report"
)

// Summary formats the console summary of a run: change counts, the result
// line, each report written or failed, and the reason of every triggered gate.
func (s *Styles) Summary(out *report.Outcome) string {
	var b strings.Builder
	res := out.Result

	total := len(res.Changes)
	if total == 0 {
		fmt.Fprintf(&b, "%s\n", s.Success.Render("No differences. Specifications are equivalent"))
	} else {
		parts := []string{
			s.Breaking.Render(fmt.Sprintf("%d breaking", res.BreakingCount)),
			s.Warning.Render(fmt.Sprintf("%d %s", res.WarningCount, Plural(res.WarningCount, "warning"))),
			s.Info.Render(fmt.Sprintf("%d info", res.InfoCount)),
		}
		fmt.Fprintf(&b, "%s (%s)\n", s.Title.Render(fmt.Sprintf("%d %s", total, Plural(total, "change"))), strings.Join(parts, ", "))
		if res.IsCompatible() {
			fmt.Fprintf(&b, "%s\n", s.Success.Render("API changes are backward compatible"))
		} else {
			fmt.Fprintf(&b, "%s\n", s.Failure.Render("API changes broke backward compatibility"))
		}
	}

	for _, r := range out.Renders {
		if r.Err != nil {
			fmt.Fprintf(&b, "  %s %-8s %s\n", s.Failure.Render("✗"), r.Format, s.Dim.Render(r.Err.Error()))
			continue
		}
		fmt.Fprintf(&b, "  %s %-8s %s\n", s.Success.Render("✓"), r.Format, s.Path.Render(r.Path))
	}

	for _, reason := range out.FailureReasons() {
		fmt.Fprintf(&b, "%s %s\n", s.Failure.Render("FAILED:"), reason)
	}
	return b.String()
}
