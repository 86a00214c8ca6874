package cliutil

import (
	"errors"

	"github.com/x3t/openapi-diff/oaserrors"
	"github.com/x3t/openapi-diff/report"
)

// Exit codes. Values above 1 follow sysexits.h where one applies.
const (
	ExitOK           = 0
	ExitGate         = 1
	ExitRenderFailed = 2
	ExitUsage        = 64
	ExitConfig       = 65
	ExitComparison   = 66
	ExitInternal     = 70
	ExitIO           = 74
)

// UsageError marks invalid command-line usage.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode maps the result of a run to a process exit code. A triggered
// gate takes precedence over failed reports.
func ExitCode(out *report.Outcome, err error) int {
	if err != nil {
		var usage *UsageError
		switch {
		case errors.As(err, &usage):
			return ExitUsage
		case errors.Is(err, oaserrors.ErrConfig):
			return ExitConfig
		case errors.Is(err, oaserrors.ErrComparison):
			return ExitComparison
		case errors.Is(err, oaserrors.ErrIO):
			return ExitIO
		default:
			return ExitInternal
		}
	}
	if out == nil {
		return ExitOK
	}
	if out.Failed() {
		return ExitGate
	}
	if len(out.RenderErrors()) > 0 {
		return ExitRenderFailed
	}
	return ExitOK
}
