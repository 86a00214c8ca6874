package commands

import (
	"github.com/spf13/cobra"

	"github.com/x3t/openapi-diff/internal/cliutil"
	"github.com/x3t/openapi-diff/renderer"
)

func newFormatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the report formats",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s := a.styles()
			cliutil.Writef(a.stdout, "%s\n", s.Title.Render("Report formats:"))
			for _, e := range renderer.DefaultRegistry().Entries() {
				cliutil.Writef(a.stdout, "  %-10s %s\n", e.Format, s.Dim.Render("*"+e.Extension))
			}
			return nil
		},
	}
}
