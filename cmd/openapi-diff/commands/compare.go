package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	openapidiff "github.com/x3t/openapi-diff"
	"github.com/x3t/openapi-diff/differ"
	"github.com/x3t/openapi-diff/internal/cliutil"
	"github.com/x3t/openapi-diff/internal/config"
	"github.com/x3t/openapi-diff/internal/logging"
	"github.com/x3t/openapi-diff/report"
)

var errPositionalAndFlags = errors.New("give the documents either as arguments or with --original-file and --new-file, not both")

// compareFlags holds the raw flag values. Only flags the user set are
// forwarded to the configuration loader.
type compareFlags struct {
	original           string
	revised            string
	reportName         string
	outputDir          string
	html               bool
	json               bool
	text               bool
	markdown           bool
	asciidoc           bool
	formats            []string
	failOnChange       bool
	failOnIncompatible bool
	parallel           bool
	quiet              bool
}

func bindCompareFlags(fs *pflag.FlagSet, f *compareFlags) {
	fs.StringVar(&f.original, "original-file", "", "original OpenAPI document (file path or URL)")
	fs.StringVar(&f.revised, "new-file", "", "new OpenAPI document (file path or URL)")
	fs.StringVar(&f.reportName, "report-name", "", "report path; the part after the first dot is replaced by each format's extension")
	fs.StringVar(&f.outputDir, "output-dir", report.DefaultOutputDir, "directory for reports when --report-name is not set")
	fs.BoolVar(&f.html, "html-report", false, "write an HTML report")
	fs.BoolVar(&f.json, "json-report", false, "write a JSON report")
	fs.BoolVar(&f.text, "text-report", false, "write a plain text report")
	fs.BoolVar(&f.markdown, "markdown-report", false, "write a Markdown report")
	fs.BoolVar(&f.asciidoc, "asciidoc-report", false, "write an AsciiDoc report")
	fs.StringSliceVar(&f.formats, "format", nil, "report format to write (repeatable): html, json, text, markdown, asciidoc")
	fs.BoolVar(&f.failOnChange, "fail-on-change", false, "exit with status 1 when the documents differ")
	fs.BoolVar(&f.failOnIncompatible, "fail-on-incompatible", false, "exit with status 1 when a change breaks backward compatibility")
	fs.BoolVar(&f.parallel, "parallel", false, "render report formats concurrently")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "do not print the summary")
}

// settings returns the explicitly set flags as a configuration layer.
func (f *compareFlags) settings(fs *pflag.FlagSet) config.Settings {
	var s config.Settings
	str := func(name string, v string) *string {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}
	flag := func(name string, v bool) *bool {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}
	s.OriginalFile = str("original-file", f.original)
	s.NewFile = str("new-file", f.revised)
	s.ReportName = str("report-name", f.reportName)
	s.OutputDir = str("output-dir", f.outputDir)
	s.HTMLReport = flag("html-report", f.html)
	s.JSONReport = flag("json-report", f.json)
	s.TextReport = flag("text-report", f.text)
	s.MarkdownReport = flag("markdown-report", f.markdown)
	s.AsciiDocReport = flag("asciidoc-report", f.asciidoc)
	s.FailOnChange = flag("fail-on-change", f.failOnChange)
	s.FailOnIncompatible = flag("fail-on-incompatible", f.failOnIncompatible)
	s.Parallel = flag("parallel", f.parallel)
	if fs.Changed("format") {
		s.Formats = append([]string{}, f.formats...)
	}
	return s
}

func newCompareCommand(a *app) *cobra.Command {
	f := &compareFlags{}
	cmd := &cobra.Command{
		Use:   "compare [original new]",
		Short: "Compare two OpenAPI documents and write reports",
		Long: `Compare an original and a new OpenAPI document and write a report in every
enabled format to {report base}{extension}.

The documents are given with --original-file and --new-file, or as the two
positional arguments. Settings are read from flags, then OPENAPI_DIFF_*
environment variables, then the configuration file, then defaults.

Exit status:
  0   success
  1   a fail gate triggered (--fail-on-change, --fail-on-incompatible)
  2   one or more reports could not be written
  64  invalid usage
  65  configuration error
  66  a document could not be read or parsed
  70  internal error
  74  the output directory could not be created`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return &cliutil.UsageError{Err: cobra.ExactArgs(2)(cmd, args)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				if cmd.Flags().Changed("original-file") || cmd.Flags().Changed("new-file") {
					return &cliutil.UsageError{Err: errPositionalAndFlags}
				}
				_ = cmd.Flags().Set("original-file", args[0])
				_ = cmd.Flags().Set("new-file", args[1])
			}
			return runCompare(cmd, a, f)
		},
	}
	bindCompareFlags(cmd.Flags(), f)
	return cmd
}

func runCompare(cmd *cobra.Command, a *app, f *compareFlags) error {
	logger := a.logger()
	ctx := logging.WithLogger(cmd.Context(), logger)
	adapter := logging.NewAdapter(logger)

	loaded, err := config.Load(config.LoadOptions{
		ExplicitPath: a.configPath,
		IgnoreEnv:    a.noEnv,
		Flags:        f.settings(cmd.Flags()),
	})
	if err != nil {
		return err
	}
	if loaded.LoadedFrom != "" {
		logger.Debug("loaded configuration", logging.FieldPath, loaded.LoadedFrom)
	}

	d, err := differ.New(
		differ.WithUserAgent(openapidiff.UserAgent()),
		differ.WithLogger(adapter),
		differ.WithRules(loaded.Rules),
	)
	if err != nil {
		return err
	}
	runner := report.New(report.WithComparator(d), report.WithLogger(adapter))

	outcome, err := runner.Run(ctx, loaded.Config)
	if err != nil {
		return err
	}
	a.outcome = outcome

	if !f.quiet {
		cliutil.Writef(a.stdout, "%s", a.styles().Summary(outcome))
	}
	return nil
}
