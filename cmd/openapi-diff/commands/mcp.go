package commands

import (
	"github.com/spf13/cobra"

	"github.com/x3t/openapi-diff/internal/config"
	"github.com/x3t/openapi-diff/internal/logging"
	"github.com/x3t/openapi-diff/internal/mcpserver"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the report tools over MCP (stdio)",
		Long: `Start a Model Context Protocol server on stdin/stdout exposing the
diff_report and list_formats tools. Logs go to stderr. Severity rules from the
configuration file apply to every comparison.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := a.logger()
			loaded, err := config.Load(config.LoadOptions{
				ExplicitPath: a.configPath,
				IgnoreEnv:    a.noEnv,
			})
			if err != nil {
				return err
			}
			ctx := logging.WithLogger(cmd.Context(), logger)
			return mcpserver.Run(ctx,
				mcpserver.WithLogger(logging.NewAdapter(logger)),
				mcpserver.WithRules(loaded.Rules),
			)
		},
	}
}
