package oaserrors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "/path/to/file.yaml",
			Line:    42,
			Message: "invalid syntax",
			Cause:   errors.New("underlying error"),
		}
		if msg := err.Error(); msg != "parse error in /path/to/file.yaml at line 42: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrReference) {
			t.Error("ParseError should not match ErrReference")
		}
	})
}

func TestReferenceError(t *testing.T) {
	err := &ReferenceError{Ref: "#/components/parameters/Missing", Path: "paths./pets.get", Message: "not found"}
	if msg := err.Error(); msg != "reference error: #/components/parameters/Missing at paths./pets.get: not found" {
		t.Errorf("unexpected error message: %s", msg)
	}
	if !errors.Is(err, ErrReference) {
		t.Error("ReferenceError should match ErrReference")
	}
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "file_size", Limit: 10, Actual: 20}
	if msg := err.Error(); msg != "resource limit exceeded: file_size (limit: 10, actual: 20)" {
		t.Errorf("unexpected error message: %s", msg)
	}
	if !errors.Is(err, ErrResourceLimit) {
		t.Error("ResourceLimitError should match ErrResourceLimit")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "formats", Value: "pdf", Message: "unknown format"}
	if msg := err.Error(); msg != "configuration error for formats (value: pdf): unknown format" {
		t.Errorf("unexpected error message: %s", msg)
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("ConfigError should match ErrConfig")
	}
}

func TestComparisonError(t *testing.T) {
	cause := &ParseError{Path: "new.yaml", Message: "unsupported version"}
	err := &ComparisonError{Side: "new", Location: "new.yaml", Cause: cause}

	if msg := err.Error(); msg != "comparison error in new document new.yaml: parse error in new.yaml: unsupported version" {
		t.Errorf("unexpected error message: %s", msg)
	}
	if !errors.Is(err, ErrComparison) {
		t.Error("ComparisonError should match ErrComparison")
	}
	if !errors.Is(err, ErrParse) {
		t.Error("ComparisonError should expose its ParseError cause")
	}

	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != "new.yaml" {
		t.Error("errors.As should extract the ParseError cause")
	}
}

func TestIOError(t *testing.T) {
	err := &IOError{Op: "mkdir", Path: "/ro/build", Cause: os.ErrPermission}
	if msg := err.Error(); msg != "i/o error during mkdir of /ro/build: permission denied" {
		t.Errorf("unexpected error message: %s", msg)
	}
	if !errors.Is(err, ErrIO) {
		t.Error("IOError should match ErrIO")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("IOError should unwrap to its cause")
	}
}

func TestRenderError(t *testing.T) {
	err := &RenderError{Format: "json", Path: "build/report.json", Cause: errors.New("disk full")}
	if msg := err.Error(); msg != "render error for json report (build/report.json): disk full" {
		t.Errorf("unexpected error message: %s", msg)
	}
	if !errors.Is(err, ErrRender) {
		t.Error("RenderError should match ErrRender")
	}
	if errors.Is(err, ErrIO) {
		t.Error("RenderError should not match ErrIO")
	}
}

func TestWrappedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"config", &ConfigError{}, ErrConfig},
		{"comparison", &ComparisonError{}, ErrComparison},
		{"io", &IOError{}, ErrIO},
		{"render", &RenderError{}, ErrRender},
		{"parse", &ParseError{}, ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("report: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("wrapped %T should match its sentinel", tt.err)
			}
		})
	}
}
