package commands

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	openapidiff "github.com/x3t/openapi-diff"
	"github.com/x3t/openapi-diff/internal/logging"
)

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of openapi-diff.`,
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			logger := log.NewWithOptions(a.stdout, log.Options{
				ReportTimestamp: false,
				ReportCaller:    false,
			})
			logger.SetLevel(log.InfoLevel)

			logger.Info("openapi-diff",
				logging.FieldVersion, openapidiff.Version(),
				logging.FieldCommit, openapidiff.Commit(),
				logging.FieldBuilt, openapidiff.BuildTime(),
			)
		},
	}
}
