// Package commands provides the cobra command tree for openapi-diff.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/x3t/openapi-diff/internal/cliutil"
	"github.com/x3t/openapi-diff/internal/logging"
	"github.com/x3t/openapi-diff/report"
)

// app is the state shared by one invocation of the command tree.
type app struct {
	stdout io.Writer
	stderr io.Writer

	debug      bool
	logLevel   string
	configPath string
	color      string
	noEnv      bool

	// outcome is set by compare and drives the exit code
	outcome *report.Outcome
}

// logger returns the logger selected by --debug and --log-level.
func (a *app) logger() *log.Logger {
	level := a.logLevel
	if a.debug {
		level = "debug"
	}
	return logging.NewWithWriter(a.stderr, level)
}

func (a *app) styles() *cliutil.Styles {
	return cliutil.NewStyles(cliutil.IsColorEnabled(a.color, a.stdout))
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err != nil {
		a.logger().Error("command failed", logging.FieldError, err)
	}
	return cliutil.ExitCode(a.outcome, err)
}

func newRootCommand(a *app) *cobra.Command {
	compare := &compareFlags{}

	root := &cobra.Command{
		Use:   "openapi-diff",
		Short: "Compare two OpenAPI documents and report the changes",
		Long: `openapi-diff compares an original and a new OpenAPI (Swagger 2.0 or 3.x)
document and writes the changes as HTML, JSON, plain text, Markdown or
AsciiDoc reports. It classifies every change as breaking or compatible and can
fail the build when the API changed or broke backward compatibility.

Running openapi-diff without a subcommand is the same as "openapi-diff compare".`,
		Example: `  openapi-diff --original-file v1.yaml --new-file v2.yaml --html-report
  openapi-diff compare --originalFile v1.yaml --newFile v2.yaml --format json --format md
  openapi-diff compare --original-file v1.yaml --new-file v2.yaml --fail-on-incompatible`,
		Args:          unknownCommandArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, a, compare)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.StringVar(&a.configPath, "config", "", "path to config file (default: .openapi-diff.yaml, .yml or .toml in the working directory)")
	pf.BoolVar(&a.noEnv, "no-env", false, "ignore OPENAPI_DIFF_* environment variables")
	pf.StringVar(&a.color, "color", cliutil.ColorAuto, "colorize output: auto, always, never")

	bindCompareFlags(root.Flags(), compare)
	root.SetFlagErrorFunc(usageError)
	root.SetGlobalNormalizationFunc(normalizeFlagName)

	root.AddCommand(newCompareCommand(a))
	root.AddCommand(newFormatsCommand(a))
	root.AddCommand(newVersionCommand(a))
	root.AddCommand(newMCPCommand(a))
	root.AddCommand(newInitCommand(a))

	return root
}

// usageError marks flag parsing failures as usage errors.
func usageError(_ *cobra.Command, err error) error {
	return &cliutil.UsageError{Err: err}
}

// unknownCommandArgs rejects positional arguments on the root command and
// suggests the closest subcommand name.
func unknownCommandArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	var names []string
	for _, c := range cmd.Commands() {
		if c.IsAvailableCommand() {
			names = append(names, c.Name())
		}
	}
	msg := fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())
	if s := suggestCommand(args[0], names); s != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", s)
	}
	return &cliutil.UsageError{Err: errors.New(msg)}
}

func suggestCommand(name string, candidates []string) string {
	best, bestDist := "", 3
	for _, c := range candidates {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(name), c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// normalizeFlagName accepts camelCase and snake_case spellings of every
// flag, so --originalFile and --original_file both mean --original-file.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_':
			b.WriteByte('-')
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
		default:
			b.WriteRune(r)
		}
	}
	return pflag.NormalizedName(b.String())
}
