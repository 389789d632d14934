package commands

import (
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/config"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/app"
	"github.com/spf13/cobra"
)

func (c *CLI) newRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh tracked systems once and print the route",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			threshold, err := thresholdFlag(cmd)
			if err != nil {
				return err
			}
			asJSON, _ := cmd.Flags().GetBool("json")

			_, err = c.app.Refresh(cmd.Context(), app.RefreshOptions{
				Threshold: threshold,
				JSON:      asJSON,
			})
			return err
		},
	}
	cmd.Flags().Bool("json", false, "Print the snapshot as JSON")
	addThresholdFlag(cmd)
	return cmd
}

func addThresholdFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("threshold", "t", "", "Staleness threshold as a duration or in hours (default from config)")
}

// thresholdFlag returns the --threshold override, or zero when unset.
func thresholdFlag(cmd *cobra.Command) (time.Duration, error) {
	raw, _ := cmd.Flags().GetString("threshold")
	if raw == "" {
		return 0, nil
	}
	return config.ParseThreshold(raw)
}
