package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	portsrepo "github.com/SscSPs/internship_placement_app/internal/core/ports/repositories"
	"github.com/SscSPs/internship_placement_app/internal/dto"
)

const seedActor = "seed"

var seedCmd = &cobra.Command{
	Use:   "seed <organizations.yaml>",
	Short: "Import host organizations from a YAML file",
	Long: `Import host organizations from a YAML file.

Existing organizations are updated in place; their committed slot count is
kept. Status accepts the canonical values or the legacy aktif/nonaktif.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPostgresConfig()
		if err != nil {
			return err
		}
		repos, closeRepos, err := openRepositories(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeRepos()

		n, err := seedOrganizations(cmd.Context(), repos.OrganizationRepo, args[0])
		if err != nil {
			return err
		}

		active := domain.OrganizationActive
		open, err := repos.OrganizationRepo.ListOrganizations(cmd.Context(), &active)
		if err != nil {
			return err
		}
		slog.Info("Host organizations imported", slog.Int("imported", n), slog.Int("active_total", len(open)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// loadOrganizationSeeds parses and validates an organization import file.
func loadOrganizationSeeds(path string, now time.Time) ([]domain.HostOrganization, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file dto.OrganizationSeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}

	orgs := make([]domain.HostOrganization, 0, len(file.Organizations))
	seen := make(map[string]bool, len(file.Organizations))
	for i, s := range file.Organizations {
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("organization #%d: id and name are required", i+1)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("organization %s: listed twice", s.ID)
		}
		seen[s.ID] = true
		if s.Capacity != nil && *s.Capacity < 0 {
			return nil, fmt.Errorf("organization %s: capacity must not be negative", s.ID)
		}

		status := domain.OrganizationActive
		if s.Status != "" {
			if status, err = domain.ParseLegacyOrganizationStatus(s.Status); err != nil {
				return nil, fmt.Errorf("organization %s: %w", s.ID, err)
			}
		}

		orgs = append(orgs, domain.HostOrganization{
			OrganizationID: s.ID,
			Name:           s.Name,
			Address:        s.Address,
			Contact:        s.Contact,
			Capacity:       s.Capacity,
			Status:         status,
			AuditFields:    domain.NewAuditFields(seedActor, now),
		})
	}
	return orgs, nil
}

// seedOrganizations upserts every organization of the file in one unit of work.
func seedOrganizations(ctx context.Context, repo portsrepo.OrganizationRepositoryFacade, path string) (int, error) {
	orgs, err := loadOrganizationSeeds(path, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	for _, org := range orgs {
		if err := repo.UpsertOrganization(ctx, org); err != nil {
			return 0, fmt.Errorf("failed to import organization %s: %w", org.OrganizationID, err)
		}
	}
	return len(orgs), nil
}
