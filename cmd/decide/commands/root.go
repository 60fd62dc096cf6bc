// Package commands implements the CLI commands for the decide decision task.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/decide/internal/build"
)

// CLI represents the command line interface for decide.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface: one graph-assembly
// policy per CI trigger.
type Application interface {
	PullRequest(ctx context.Context) error
	BranchPush(ctx context.Context) error
	Nightly(ctx context.Context, date string, staging bool) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "decide",
		Short:         "Compute and submit a CI task graph for one trigger",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newPullRequestCmd())
	rootCmd.AddCommand(c.newBranchPushCmd())
	rootCmd.AddCommand(c.newNightlyCmd())
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
