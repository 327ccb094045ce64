// internal/cmd/token.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javajoker/shopbot/internal/utils"
)

var tokenTTL int

var tokenCmd = &cobra.Command{
	Use:   "admin-token",
	Short: "Issue a bearer token for the admin HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = appConfig.JWT.AdminTokenTTL
		}

		utils.SetJWTSecret(appConfig.JWT.SecretKey)
		token, err := utils.GenerateAdminJWT(appConfig.Bot.AdminID, ttl)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().IntVar(&tokenTTL, "ttl", 0, "token lifetime in hours (defaults to JWT_ADMIN_TTL)")
	rootCmd.AddCommand(tokenCmd)
}
