// Package commands implements the CLI commands for edppm.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/app"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/build"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for edppm.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Configure(opts app.GlobalOptions)
	Refresh(ctx context.Context, opts app.RefreshOptions) (*domain.RefreshResult, error)
	Watch(ctx context.Context, opts app.WatchOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
	ServeDaemon(ctx context.Context) error
	DaemonStatus(ctx context.Context) (*ports.DaemonStatus, *domain.RefreshResult, error)
	DaemonRefresh(ctx context.Context) error
	StopDaemon(ctx context.Context) (bool, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "edppm",
		Short:         "Plan Power Play refresh routes for Elite Dangerous",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	// Global flags come first so the version flag does not claim -v.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory (default $EDPPM_HOME or .edppm)")

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		c.app.Configure(app.GlobalOptions{DataDir: dataDir, Verbose: verbose})
	}

	rootCmd.AddCommand(c.newRefreshCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newDaemonCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
