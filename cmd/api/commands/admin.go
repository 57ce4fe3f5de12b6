package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/nyaysathi/core/internal/application/services"
	"github.com/nyaysathi/core/internal/infrastructure/config"
	"github.com/nyaysathi/core/internal/infrastructure/logger"
)

// NewAdminCommand creates the admin credential command
func NewAdminCommand() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative credential commands",
		Long:  "Hash the admin password and mint admin tokens",
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed admin token",
		Run: func(cmd *cobra.Command, args []string) {
			subject, _ := cmd.Flags().GetString("subject")
			issueAdminToken(cmd, subject)
		},
	}
	tokenCmd.Flags().String("subject", "cli", "Token subject")

	hashCmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Run: func(cmd *cobra.Command, args []string) {
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				log.Fatal("Password is required")
			}

			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("Failed to hash password: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(hashed))
		},
	}
	hashCmd.Flags().String("password", "", "Admin password (required)")

	adminCmd.AddCommand(tokenCmd, hashCmd)
	return adminCmd
}

func issueAdminToken(cmd *cobra.Command, subject string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	adminService := services.NewAdminService(cfg.Admin, cfg.JWT, logger.NewNop())
	token, err := adminService.IssueToken(subject)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", token.TokenType, token.AccessToken)
	fmt.Fprintf(out, "Expires in: %ds\n", token.ExpiresIn)
}
