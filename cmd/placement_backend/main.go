// Command placement_backend runs the internship placement service and its
// maintenance tasks.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// @title Internship Placement API
// @version 1.0
// @description Placement allocation, capacity ledger and journal review.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth

var rootCmd = &cobra.Command{
	Use:           "placement_backend",
	Short:         "Internship placement service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
