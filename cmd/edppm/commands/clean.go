package commands

import (
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the coordinate and freshness caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coords, _ := cmd.Flags().GetBool("coords")
			freshness, _ := cmd.Flags().GetBool("freshness")

			opts := app.CleanOptions{
				Coordinates: coords,
				Freshness:   freshness,
			}

			// Default behavior: clean both caches
			if !coords && !freshness {
				opts.Coordinates = true
				opts.Freshness = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("coords", "c", false, "Remove only the coordinate cache")
	cmd.Flags().BoolP("freshness", "f", false, "Remove only the freshness cache")

	return cmd
}
