package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/internship_placement_app/internal/core/domain"
	"github.com/SscSPs/internship_placement_app/internal/repositories/memory"
)

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orgs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadOrganizationSeeds(t *testing.T) {
	path := writeSeed(t, `
organizations:
  - id: dudi-1
    name: PT Contoh
    capacity: 3
    status: aktif
  - id: dudi-2
    name: CV Terbuka
  - id: dudi-3
    name: Tutup
    capacity: 2
    status: nonaktif
`)
	orgs, err := loadOrganizationSeeds(path, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, orgs, 3)

	assert.Equal(t, domain.OrganizationActive, orgs[0].Status)
	assert.Equal(t, 3, *orgs[0].Capacity)
	assert.Nil(t, orgs[1].Capacity)
	assert.Equal(t, domain.OrganizationActive, orgs[1].Status)
	assert.Equal(t, domain.OrganizationInactive, orgs[2].Status)
	assert.Equal(t, seedActor, orgs[0].CreatedBy)
}

func TestLoadOrganizationSeeds_Rejects(t *testing.T) {
	tests := map[string]string{
		"missing name":      "organizations:\n  - id: a\n",
		"duplicate id":      "organizations:\n  - id: a\n    name: A\n  - id: a\n    name: B\n",
		"negative capacity": "organizations:\n  - id: a\n    name: A\n    capacity: -1\n",
		"unknown status":    "organizations:\n  - id: a\n    name: A\n    status: closed\n",
		"not yaml":          "organizations: [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadOrganizationSeeds(writeSeed(t, body), time.Now())
			assert.Error(t, err)
		})
	}
}

func TestSeedOrganizationsIntoMemoryStore(t *testing.T) {
	store := memory.NewStore()
	path := writeSeed(t, "organizations:\n  - id: a\n    name: A\n    capacity: 1\n")

	n, err := seedOrganizations(context.Background(), store, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	snap, err := store.FindCapacity(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Committed)
	assert.Equal(t, 1, *snap.Remaining)
}
