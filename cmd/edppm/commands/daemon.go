package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/spf13/cobra"
)

func (c *CLI) newDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Manage the background daemon",
	}

	cmd.AddCommand(c.newDaemonServeCmd())
	cmd.AddCommand(c.newDaemonStatusCmd())
	cmd.AddCommand(c.newDaemonRefreshCmd())
	cmd.AddCommand(c.newDaemonStopCmd())

	return cmd
}

func (c *CLI) newDaemonServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "serve",
		Short:  "Start the daemon server (internal use)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.ServeDaemon(cmd.Context())
		},
	}
}

func (c *CLI) newDaemonStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status and its latest snapshot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, snapshot, err := c.app.DaemonStatus(cmd.Context())
			if err != nil {
				return err
			}
			writeStatus(cmd.OutOrStdout(), status, snapshot)
			return nil
		},
	}
}

func (c *CLI) newDaemonRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Ask the daemon to refresh, starting it if needed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.DaemonRefresh(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "refresh started")
			return nil
		},
	}
}

func (c *CLI) newDaemonStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stopped, err := c.app.StopDaemon(cmd.Context())
			if err != nil {
				return err
			}
			if stopped {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "daemon stopped")
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "daemon not running")
			}
			return nil
		},
	}
}

func writeStatus(w io.Writer, status *ports.DaemonStatus, snapshot *domain.RefreshResult) {
	if !status.Running {
		_, _ = fmt.Fprintln(w, "daemon not running")
		return
	}

	refreshing := "no"
	if status.Refreshing {
		refreshing = "yes"
	}

	_, _ = fmt.Fprintf(w, "daemon running (pid %d)\n", status.PID)
	_, _ = fmt.Fprintf(w, "  uptime          %s\n", status.Uptime.Round(time.Second))
	if status.IdleRemaining > 0 {
		_, _ = fmt.Fprintf(w, "  idle remaining  %s\n", status.IdleRemaining.Round(time.Second))
	}
	_, _ = fmt.Fprintf(w, "  refreshing      %s\n", refreshing)

	if snapshot == nil {
		_, _ = fmt.Fprintln(w, "  last refresh    never")
		return
	}
	_, _ = fmt.Fprintf(w, "  last refresh    %s\n", snapshot.CompletedAt.Format("2006-01-02 15:04:05 MST"))
	_, _ = fmt.Fprintf(w, "  systems         %d current, %d outdated, %d unknown\n",
		len(snapshot.Current), len(snapshot.Outdated), len(snapshot.Unknown))
	_, _ = fmt.Fprintf(w, "  route           %d stops, %.2f ly\n", len(snapshot.Route), snapshot.RouteDistance)
	if len(snapshot.Missing) > 0 {
		_, _ = fmt.Fprintf(w, "  missing coords  %d\n", len(snapshot.Missing))
	}
}
