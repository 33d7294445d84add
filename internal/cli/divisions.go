package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// divisionsCommand creates the "divisions" command: list the supported
// harmonics and whether each carries house placements.
func (c *CLI) divisionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "divisions",
		Short: "List the supported divisional charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(renderDivisions())
			return nil
		},
	}
}
