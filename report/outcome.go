package report

import (
	"github.com/x3t/openapi-diff/differ"
	"github.com/x3t/openapi-diff/renderer"
)

// Gate failure reasons.
const (
	ReasonChanged      = "The specifications do not match and the build settings state to fail if any change is detected."
	ReasonIncompatible = "The specifications do not match and the build settings specify to fail if changes break compatibility."
)

// RenderResult is the outcome of writing one report.
type RenderResult struct {
	Format renderer.Format
	Path   string
	// Err is a *oaserrors.RenderError, or nil when the report was written
	Err error
}

// GateResult is the evaluation of one fail gate.
type GateResult struct {
	Enabled   bool
	Triggered bool
	// Reason is set only when the gate triggered
	Reason string
}

// Outcome is everything a run produced. A triggered gate is reported here;
// it is never returned as an error.
type Outcome struct {
	// ReportBase is the path the format extensions were appended to
	ReportBase string
	// Result is the comparison result
	Result *differ.DiffResult
	// Renders holds one entry per enabled format, in registry order
	Renders []RenderResult
	// ChangeGate triggers when FailOnChange is set and the documents differ
	ChangeGate GateResult
	// IncompatibleGate triggers when FailOnIncompatible is set and a change is breaking
	IncompatibleGate GateResult
}

// Failed reports whether any gate triggered.
func (o *Outcome) Failed() bool {
	return o.ChangeGate.Triggered || o.IncompatibleGate.Triggered
}

// FailureReasons returns the reason of every triggered gate, change gate first.
func (o *Outcome) FailureReasons() []string {
	var reasons []string
	if o.ChangeGate.Triggered {
		reasons = append(reasons, o.ChangeGate.Reason)
	}
	if o.IncompatibleGate.Triggered {
		reasons = append(reasons, o.IncompatibleGate.Reason)
	}
	return reasons
}

// RenderErrors returns the error of every failed report.
func (o *Outcome) RenderErrors() []error {
	var errs []error
	for _, r := range o.Renders {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}

// Written returns the paths of the reports that were written.
func (o *Outcome) Written() []string {
	var paths []string
	for _, r := range o.Renders {
		if r.Err == nil {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

func evaluateGates(cfg Config, result *differ.DiffResult) (change, incompatible GateResult) {
	change = GateResult{Enabled: cfg.FailOnChange}
	if cfg.FailOnChange && !result.IsUnchanged() {
		change.Triggered = true
		change.Reason = ReasonChanged
	}
	incompatible = GateResult{Enabled: cfg.FailOnIncompatible}
	if cfg.FailOnIncompatible && !result.IsCompatible() {
		incompatible.Triggered = true
		incompatible.Reason = ReasonIncompatible
	}
	return change, incompatible
}
