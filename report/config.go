package report

import (
	"path/filepath"
	"strings"

	"github.com/x3t/openapi-diff/oaserrors"
	"github.com/x3t/openapi-diff/renderer"
)

const (
	// DefaultOutputDir is used when Config.OutputDir is empty.
	DefaultOutputDir = "build"
	// DefaultReportName is the report file name used inside OutputDir when
	// Config.ReportName is empty.
	DefaultReportName = "Openapi_Diff_Report"
)

// Config describes one comparison run. It is built once by the caller and
// passed by value.
type Config struct {
	// OriginalLocation is the file path or URL of the original document
	OriginalLocation string
	// NewLocation is the file path or URL of the new document
	NewLocation string
	// ReportName is the report base name. Everything from the first "." on
	// is dropped, so "build/out.report" writes build/out.json and friends.
	ReportName string
	// OutputDir holds the reports when ReportName is empty
	OutputDir string
	// Formats lists the reports to write
	Formats []renderer.Format
	// FailOnChange triggers the change gate when the documents differ
	FailOnChange bool
	// FailOnIncompatible triggers the incompatibility gate on breaking changes
	FailOnIncompatible bool
	// Parallel renders the enabled formats concurrently
	Parallel bool
}

// WithDefaults returns a copy of c with OutputDir defaulted and Formats
// de-duplicated in registry order. Unknown formats are kept at the end so
// that Validate can report them.
func (c Config) WithDefaults() Config {
	return c.withDefaults(renderer.DefaultRegistry())
}

func (c Config) withDefaults(reg *renderer.Registry) Config {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	known, unknown := reg.Order(c.Formats)
	c.Formats = append(known, unknown...)
	return c
}

// Validate reports the first invalid option as *oaserrors.ConfigError.
func (c Config) Validate() error {
	return c.validate(renderer.DefaultRegistry())
}

func (c Config) validate(reg *renderer.Registry) error {
	if strings.TrimSpace(c.OriginalLocation) == "" {
		return &oaserrors.ConfigError{Option: "originalFile", Message: "original document location is required"}
	}
	if strings.TrimSpace(c.NewLocation) == "" {
		return &oaserrors.ConfigError{Option: "newFile", Message: "new document location is required"}
	}
	for _, f := range c.Formats {
		if _, ok := reg.Lookup(f); !ok {
			return &oaserrors.ConfigError{
				Option:  "formats",
				Value:   string(f),
				Message: "unknown report format; valid formats: " + strings.Join(reg.Names(), ", "),
			}
		}
	}
	return nil
}

// ReportBase returns the path every artifact extension is appended to.
func (c Config) ReportBase() string {
	return ResolveReportBase(c.ReportName, c.OutputDir)
}

// ResolveReportBase returns the part of reportName before its first ".",
// or outputDir joined with DefaultReportName when reportName is empty.
//
// The split is on the first dot anywhere in the name, so "v1.2/report"
// resolves to "v1".
func ResolveReportBase(reportName, outputDir string) string {
	if reportName != "" {
		if i := strings.Index(reportName, "."); i >= 0 {
			return reportName[:i]
		}
		return reportName
	}
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return filepath.Join(outputDir, DefaultReportName)
}
