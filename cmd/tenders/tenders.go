// Package tenders implements the command that lists the current tender set,
// serving from the cache snapshot when one exists.
package tenders

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orchestrarfp/gotender/cmd/common"
	"github.com/orchestrarfp/gotender/internal/cachestore"
)

// Command returns the tenders command.
func Command() *cobra.Command {
	var (
		refresh bool
		demo    bool
	)

	cmd := &cobra.Command{
		Use:   "tenders",
		Short: "List current tenders, cache-first",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps()
			if err != nil {
				return fmt.Errorf("failed to get dependencies: %w", err)
			}

			pipeline := common.NewPipeline(deps)

			if demo {
				// Forced reprime, replacing whatever the cache holds.
				pipeline.Store.Save(cachestore.DemoSnapshot(time.Now()))
				deps.Logger.Info("Cache replaced with demo tenders")
			}

			records := pipeline.Service.GetTenders(cmd.Context(), refresh)
			if len(records) == 0 {
				deps.Logger.Info("No tenders available, try --refresh")
				return nil
			}

			common.RenderTenderTable(records)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "force a live discovery pass")
	cmd.Flags().BoolVar(&demo, "demo", false, "replace the cache with the demo tenders")

	return cmd
}
