package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/seed"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo data set into the configured store",
		Long: `Replays the demo invoices and payments through the workflow so that the
approval ledger is populated as well. The store must not hold any invoices.

With STORE_DRIVER=memory the data only lives for the duration of the command,
which is useful to check the data set itself.`,
		RunE: runSeed,
	}
	cmd.Flags().String("start", seed.DefaultStart.Format(time.RFC3339), "Timestamp of the first demo event (RFC3339)")
	cmd.Flags().Bool("users", false, "Also print the demo identities")
	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	startStr, _ := cmd.Flags().GetString("start")
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return fmt.Errorf("invalid --start, use RFC3339: %w", err)
	}

	ctx := cmd.Context()
	_, repos, closeFn, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	summary, err := seed.Load(ctx, repos, start)
	if err != nil {
		return err
	}
	if err := printJSON(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	if users, _ := cmd.Flags().GetBool("users"); users {
		return printJSON(cmd.OutOrStdout(), seed.Users)
	}
	return nil
}
