package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/SscSPs/internship_placement_app/internal/platform/config"
	"github.com/SscSPs/internship_placement_app/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPostgresConfig()
		if err != nil {
			return err
		}
		return migrateUp(cfg.DatabaseURL)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid steps %q: %w", args[0], err)
			}
			steps = n
		}

		cfg, err := loadPostgresConfig()
		if err != nil {
			return err
		}
		m, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer closeMigrator(m)

		if err := m.Down(steps); err != nil {
			return err
		}
		version, _, err := m.Version()
		if err != nil {
			return err
		}
		slog.Info("Rolled back migrations", slog.Int("steps", steps), slog.Uint64("version", uint64(version)))
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied migration version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPostgresConfig()
		if err != nil {
			return err
		}
		m, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer closeMigrator(m)

		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version: %d\ndirty: %v\n", version, dirty)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func loadPostgresConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.StorageDriver != config.StorageDriverPostgres || cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("this command needs STORAGE_DRIVER=postgres and PGSQL_URL")
	}
	return cfg, nil
}

func migrateUp(databaseURL string) error {
	slog.Info("Running database migrations...")
	m, err := database.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer closeMigrator(m)
	return m.Up()
}

func closeMigrator(m *database.Migrator) {
	if err := m.Close(); err != nil {
		slog.Error("Error closing migrator", slog.String("error", err.Error()))
	}
}
