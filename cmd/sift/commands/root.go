// Package commands implements the CLI commands for the sift check runner.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"sift/internal/app"
	"sift/internal/build"
)

// Checker is the application surface the CLI drives.
type Checker interface {
	Run(ctx context.Context, opts app.Options) error
	ClearCache() error
}

// CLI represents the command line interface for sift.
type CLI struct {
	app     Checker
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Checker) *CLI {
	rootCmd := &cobra.Command{
		Use:           "sift",
		Short:         "Run only the tests and lint checks your changes require",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          cobra.NoArgs,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.Flags().Bool("disable-lint", false, "Skip the lint run entirely")
	rootCmd.Flags().Bool("disable-cache", false, "Ignore the fingerprint cache and run everything")
	rootCmd.Flags().Bool("clear-cache", false, "Delete the fingerprint cache and exit")
	rootCmd.Flags().Bool("debug", false, "Log detected changes and the selection partition")
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress live process output")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.RunE = c.runChecks
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runChecks(cmd *cobra.Command, _ []string) error {
	if clear, _ := cmd.Flags().GetBool("clear-cache"); clear {
		return c.app.ClearCache()
	}

	disableLint, _ := cmd.Flags().GetBool("disable-lint")
	disableCache, _ := cmd.Flags().GetBool("disable-cache")
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")

	return c.app.Run(cmd.Context(), app.Options{
		DisableLint:  disableLint,
		DisableCache: disableCache,
		Debug:        debug,
		Quiet:        quiet,
	})
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
