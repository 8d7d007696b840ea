package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/prati1/taskapp/cmd/api/commands"
)

// @title TaskApp API
// @version 1.0
// @description Task tracking service with due-date and priority validation

// @host localhost:8080
// @BasePath /api/v1

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskapp",
		Short: "TaskApp API Server",
		Long:  `TaskApp tracks units of work with due dates, priorities, and statuses, enforcing lifecycle rules on every create and update.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
