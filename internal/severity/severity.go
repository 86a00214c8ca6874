// Package severity provides the severity levels used to classify API changes.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
//
// Error and Critical changes break backward compatibility.
package severity

import (
	"fmt"
	"strings"
)

// Severity indicates how a change affects existing clients.
type Severity int

const (
	// SeverityInfo indicates a compatible change such as an addition.
	SeverityInfo Severity = iota

	// SeverityWarning indicates a change that is compatible in most cases
	// but worth reviewing, such as a relaxed constraint or a changed format.
	SeverityWarning

	// SeverityError indicates a change that breaks existing clients.
	SeverityError

	// SeverityCritical indicates removal of an endpoint or operation.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// IsBreaking reports whether the severity marks a backward incompatible change.
func (s Severity) IsBreaking() bool {
	return s >= SeverityError
}

// Parse converts a case-insensitive name into a Severity.
func Parse(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "info":
		return SeverityInfo, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return 0, fmt.Errorf("unknown severity %q (expected info, warning, error or critical)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so severities can be
// written by name in configuration files.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
