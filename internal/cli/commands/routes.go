package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/signdesk/internal/routes"
)

// NewRoutesCommand creates the routes command.
func NewRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the page routes",
		Long: `List every page path the server resolves, with the page it renders
and whether it is public or rendered inside the authenticated shell.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := newTable(cmd.OutOrStdout())
			t.AppendHeader([]interface{}{"Pattern", "Page", "Title", "Access"})
			for _, e := range routes.Default().Entries() {
				access := "shell"
				if routes.IsPublic(e.Page) {
					access = "public"
				}
				t.AppendRow([]interface{}{e.Pattern, e.Page.String(), e.Title, access})
			}
			t.Render()
			return nil
		},
	}
}
