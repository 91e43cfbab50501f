package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/platform/config"
	"github.com/SscSPs/invoice_workflow_app/internal/utils"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development JWT for an identity",
		Example: `  iwactl token --id 3 --name 刘部长 --role department_leader
  iwactl token --id 5 --role finance --ttl 8h`,
		RunE: runToken,
	}
	addIdentityFlags(cmd)
	cmd.Flags().Duration("ttl", 0, "Token lifetime (default JWT_EXPIRY_DURATION)")
	return cmd
}

func runToken(cmd *cobra.Command, _ []string) error {
	who, err := identityFromFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	ttl, _ := cmd.Flags().GetDuration("ttl")
	if ttl <= 0 {
		ttl = cfg.JWTExpiryDuration
	}

	token, err := utils.GenerateJWT(who, cfg.JWTSecret, ttl, cfg.JWTIssuer, time.Now())
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
