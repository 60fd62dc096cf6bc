package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPullRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull-request",
		Short: "Schedule tasks for a pull request or a push to one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.PullRequest(cmd.Context())
		},
	}
}

func (c *CLI) newBranchPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch-push",
		Short: "Schedule tasks for a push to the main branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.BranchPush(cmd.Context())
		},
	}
}

func (c *CLI) newNightlyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nightly",
		Short: "Schedule the nightly release pipeline (build, sign, publish)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, _ := cmd.Flags().GetString("date")
			staging, _ := cmd.Flags().GetBool("staging")
			return c.app.Nightly(cmd.Context(), date, staging)
		},
	}
	cmd.Flags().String("date", "", "ISO-8601 timestamp for the build")
	cmd.Flags().Bool("staging", false,
		"Perform a staging build (use dep workers, don't communicate with Google Play)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}
