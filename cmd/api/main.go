package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyaysathi/core/cmd/api/commands"
)

// @title NyaySathi API
// @version 1.0
// @description Legal office assistant: contacts, tasks, calendar, documents and legal translation

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin JWT.

func main() {
	rootCmd := &cobra.Command{
		Use:   "nyaysathi",
		Short: "NyaySathi API Server",
		Long:  `NyaySathi keeps a legal office's contacts, tasks, calendar and documents, and translates and explains legal text in Indian languages.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewAdminCommand())
	rootCmd.AddCommand(commands.NewContactsCommand())
	rootCmd.AddCommand(commands.NewPdfsCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
