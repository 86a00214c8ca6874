package config

import (
	"os"

	"github.com/x3t/openapi-diff/differ"
	"github.com/x3t/openapi-diff/internal/severity"
	"github.com/x3t/openapi-diff/oaserrors"
	"github.com/x3t/openapi-diff/renderer"
	"github.com/x3t/openapi-diff/report"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// ExplicitPath is a configuration file given with --config. It must exist.
	ExplicitPath string
	// WorkingDir is searched for a default configuration file when
	// ExplicitPath is empty. Defaults to the current directory.
	WorkingDir string
	// IgnoreEnv skips OPENAPI_DIFF_* variables.
	IgnoreEnv bool
	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
	// Flags holds explicitly set command-line flags. They take precedence
	// over every other source.
	Flags Settings
}

// Result is the resolved configuration.
type Result struct {
	// Config is ready for report.Runner.Run
	Config report.Config
	// Rules holds severity overrides from the configuration file
	Rules differ.Rules
	// LoadedFrom is the configuration file that was read, if any
	LoadedFrom string
}

// Load merges, from lowest to highest precedence: defaults, the
// configuration file, the environment and the flags.
func Load(opts LoadOptions) (*Result, error) {
	res := &Result{}
	merged := Settings{}

	path := opts.ExplicitPath
	if path == "" {
		dir := opts.WorkingDir
		if dir == "" {
			dir = "."
		}
		path = Discover(dir)
	}
	if path != "" {
		fileSettings, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		merged = merge(merged, fileSettings)
		res.LoadedFrom = path
	}

	if !opts.IgnoreEnv {
		lookup := opts.LookupEnv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		envSettings, err := FromEnv(lookup)
		if err != nil {
			return nil, err
		}
		merged = merge(merged, envSettings)
	}

	merged = merge(merged, opts.Flags)

	cfg, err := ToReportConfig(merged)
	if err != nil {
		return nil, err
	}
	rules, err := ToRules(merged.Rules)
	if err != nil {
		return nil, err
	}
	res.Config = cfg
	res.Rules = rules
	return res, nil
}

// ToReportConfig converts merged settings into a defaulted report.Config.
// The per-format switches and the formats list are combined.
func ToReportConfig(s Settings) (report.Config, error) {
	var formats []renderer.Format
	for _, name := range s.Formats {
		f, err := renderer.ParseFormat(name)
		if err != nil {
			return report.Config{}, &oaserrors.ConfigError{Option: "formats", Value: name, Cause: err}
		}
		formats = append(formats, f)
	}
	switches := []struct {
		on     *bool
		format renderer.Format
	}{
		{s.HTMLReport, renderer.FormatHTML},
		{s.JSONReport, renderer.FormatJSON},
		{s.TextReport, renderer.FormatText},
		{s.MarkdownReport, renderer.FormatMarkdown},
		{s.AsciiDocReport, renderer.FormatAsciiDoc},
	}
	for _, sw := range switches {
		if deref(sw.on) {
			formats = append(formats, sw.format)
		}
	}

	cfg := report.Config{
		OriginalLocation:   deref(s.OriginalFile),
		NewLocation:        deref(s.NewFile),
		ReportName:         deref(s.ReportName),
		OutputDir:          deref(s.OutputDir),
		Formats:            formats,
		FailOnChange:       deref(s.FailOnChange),
		FailOnIncompatible: deref(s.FailOnIncompatible),
		Parallel:           deref(s.Parallel),
	}
	return cfg.WithDefaults(), nil
}

// ToRules converts rule entries into differ.Rules and validates them.
func ToRules(entries []RuleEntry) (differ.Rules, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	rules := make(differ.Rules, len(entries))
	for _, e := range entries {
		key := differ.RuleKey{
			Category:   differ.ChangeCategory(e.Category),
			ChangeType: differ.ChangeType(e.Change),
			SubType:    e.SubType,
		}
		rule := differ.Rule{Ignore: e.Ignore}
		if e.Severity != "" {
			sev, err := severity.Parse(e.Severity)
			if err != nil {
				return nil, &oaserrors.ConfigError{Option: "rules", Value: key.String(), Cause: err}
			}
			rule.Severity = &sev
		}
		rules[key] = rule
	}
	if err := rules.Validate(); err != nil {
		return nil, &oaserrors.ConfigError{Option: "rules", Cause: err}
	}
	return rules, nil
}
