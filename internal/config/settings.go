// Package config loads the CLI configuration from defaults, a YAML or TOML
// file, OPENAPI_DIFF_* environment variables and command-line flags, and
// turns the merged result into a report.Config.
package config

// Settings is one configuration layer. Nil fields are unset and do not
// override lower layers.
type Settings struct {
	OriginalFile *string `yaml:"originalFile,omitempty" toml:"originalFile,omitempty"`
	NewFile      *string `yaml:"newFile,omitempty" toml:"newFile,omitempty"`
	ReportName   *string `yaml:"reportName,omitempty" toml:"reportName,omitempty"`
	OutputDir    *string `yaml:"outputDir,omitempty" toml:"outputDir,omitempty"`

	HTMLReport     *bool `yaml:"htmlReport,omitempty" toml:"htmlReport,omitempty"`
	JSONReport     *bool `yaml:"jsonReport,omitempty" toml:"jsonReport,omitempty"`
	TextReport     *bool `yaml:"textReport,omitempty" toml:"textReport,omitempty"`
	MarkdownReport *bool `yaml:"markdownReport,omitempty" toml:"markdownReport,omitempty"`
	AsciiDocReport *bool `yaml:"asciidocReport,omitempty" toml:"asciidocReport,omitempty"`

	// Formats lists format names; nil is unset, an empty list clears lower layers
	Formats []string `yaml:"formats,omitempty" toml:"formats,omitempty"`

	FailOnChange       *bool `yaml:"failOnChange,omitempty" toml:"failOnChange,omitempty"`
	FailOnIncompatible *bool `yaml:"failOnIncompatible,omitempty" toml:"failOnIncompatible,omitempty"`
	Parallel           *bool `yaml:"parallel,omitempty" toml:"parallel,omitempty"`

	Rules []RuleEntry `yaml:"rules,omitempty" toml:"rules,omitempty"`
}

// RuleEntry overrides the severity of one class of change, or ignores it.
//
//	rules:
//	  - category: operation
//	    change: modified
//	    subtype: operationId
//	    severity: info
type RuleEntry struct {
	Category string `yaml:"category" toml:"category"`
	Change   string `yaml:"change" toml:"change"`
	SubType  string `yaml:"subtype,omitempty" toml:"subtype,omitempty"`
	Severity string `yaml:"severity,omitempty" toml:"severity,omitempty"`
	Ignore   bool   `yaml:"ignore,omitempty" toml:"ignore,omitempty"`
}

// merge returns base with every set field of over applied on top.
func merge(base, over Settings) Settings {
	setString(&base.OriginalFile, over.OriginalFile)
	setString(&base.NewFile, over.NewFile)
	setString(&base.ReportName, over.ReportName)
	setString(&base.OutputDir, over.OutputDir)
	setBool(&base.HTMLReport, over.HTMLReport)
	setBool(&base.JSONReport, over.JSONReport)
	setBool(&base.TextReport, over.TextReport)
	setBool(&base.MarkdownReport, over.MarkdownReport)
	setBool(&base.AsciiDocReport, over.AsciiDocReport)
	setBool(&base.FailOnChange, over.FailOnChange)
	setBool(&base.FailOnIncompatible, over.FailOnIncompatible)
	setBool(&base.Parallel, over.Parallel)
	if over.Formats != nil {
		base.Formats = append([]string(nil), over.Formats...)
	}
	if over.Rules != nil {
		base.Rules = append([]RuleEntry(nil), over.Rules...)
	}
	return base
}

func setString(dst **string, src *string) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func setBool(dst **bool, src *bool) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
