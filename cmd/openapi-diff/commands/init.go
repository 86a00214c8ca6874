package commands

import (
	"github.com/spf13/cobra"

	"github.com/x3t/openapi-diff/internal/cliutil"
	"github.com/x3t/openapi-diff/internal/config"
)

func newInitCommand(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented configuration file",
		Long: `Write a configuration file template. The default path is
.openapi-diff.yaml in the working directory. An existing file is kept unless
--force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := config.DefaultFileNames[0]
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteTemplate(path, force); err != nil {
				return err
			}
			cliutil.Writef(a.stdout, "%s %s\n", a.styles().Success.Render("Created"), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
