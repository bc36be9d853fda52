// Package discover implements the command that runs a live discovery pass
// across all configured portals and prints the result.
package discover

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/orchestrarfp/gotender/cmd/common"
)

// Command returns the discover command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Run a live tender discovery pass",
		Long: `Fetch every configured portal, extract and score tender notices,
and replace the cached snapshot with the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}

			pipeline := common.NewPipeline(deps)

			records := pipeline.Service.GetTenders(cmd.Context(), true)
			if len(records) == 0 {
				deps.Logger.Info("No tenders discovered")
				return nil
			}

			common.RenderTenderTable(records)
			return nil
		},
	}
}
