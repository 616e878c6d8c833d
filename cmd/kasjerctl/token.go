package main

import (
	"fmt"
	"time"

	"kasjer/internal/auth"

	"github.com/spf13/cobra"
)

var (
	tokenName string
	tokenTTL  time.Duration
)

var adminTokenCmd = &cobra.Command{
	Use:   "admin-token",
	Short: "Mint a bearer token for the admin endpoints",
	Long: `Mint a bearer token for /admin/data, /messages/send and /messages/broadcast.

	kasjerctl admin-token --name ops --ttl 12h
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		token, err := auth.GenerateJWT("", tokenName, auth.RoleAdmin, cfg.JWT.Secret, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(adminTokenCmd)
	adminTokenCmd.Flags().StringVar(&tokenName, "name", "admin", "operator name stored in the token")
	adminTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 8*time.Hour, "token lifetime")
}
