package roles

import (
	"context"
	"log/slog"

	"github.com/mentorhub/mentorhub/internal"
)

// Migrator backfills user_roles from the legacy profile tables. The original
// deployment created profile rows without assignment rows; this walks
// admin_data, mentor_data and mentee_data and inserts the missing grants.
type Migrator struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewMigrator(repo RepositoryAPI, logger *slog.Logger) *Migrator {
	return &Migrator{
		repo:   repo,
		logger: logger,
	}
}

// MigrationReport summarizes one backfill run.
type MigrationReport struct {
	Seeded   []Name       `json:"seeded_roles"`
	Inserted map[Name]int `json:"inserted"`
	Skipped  map[Name]int `json:"skipped"`
}

// MigrateExistingRoles runs the idempotent backfill. The profile tables are
// walked in precedence order (admin, mentor, mentee) and a user who already
// holds any assignment is skipped, so a user present in several profile
// tables ends up with exactly one row for the highest-precedence role and
// re-running after a partial run performs zero duplicate inserts. There is
// deliberately no transaction around the whole walk: a crash mid-run leaves
// a resumable, not corrupted, state.
func (m *Migrator) MigrateExistingRoles(ctx context.Context) (*MigrationReport, error) {
	report := &MigrationReport{
		Inserted: make(map[Name]int),
		Skipped:  make(map[Name]int),
	}

	roleIDs := make(map[Name]int64, len(CatalogNames))
	for _, name := range CatalogNames {
		role, err := m.repo.GetRoleByName(ctx, name)
		if err != nil {
			return nil, internal.NewStoreError("failed to read role catalog", err)
		}
		if role == nil {
			role, err = m.repo.CreateRole(ctx, name)
			if err != nil {
				return nil, internal.NewStoreError("failed to seed role catalog", err)
			}
			report.Seeded = append(report.Seeded, name)
			m.logger.Info("seeded missing catalog role", "role", name)
		}
		roleIDs[name] = role.ID
	}

	for _, name := range CatalogNames {
		userIDs, err := m.repo.ListProfileUserIDs(ctx, name)
		if err != nil {
			return nil, internal.NewStoreError("failed to list profile rows", err)
		}

		for _, userID := range userIDs {
			assigned, err := m.repo.GetRoleNamesForUser(ctx, userID)
			if err != nil {
				return nil, internal.NewStoreError("failed to check existing assignment", err)
			}
			if len(assigned) > 0 {
				report.Skipped[name]++
				continue
			}
			if err := m.repo.InsertAssignment(ctx, userID, roleIDs[name]); err != nil {
				return nil, internal.NewStoreError("failed to insert backfilled assignment", err)
			}
			report.Inserted[name]++
		}

		m.logger.Info("migrated profile table",
			"role", name,
			"inserted", report.Inserted[name],
			"skipped", report.Skipped[name])
	}

	return report, nil
}

// VerifyMigration tabulates user_roles joined to roles, per role name.
// Pure read, no mutation; meant for post-migration auditing.
func (m *Migrator) VerifyMigration(ctx context.Context) (map[Name]int64, error) {
	counts, err := m.repo.CountAssignmentsByRole(ctx)
	if err != nil {
		return nil, internal.NewStoreError("failed to count assignments", err)
	}
	return counts, nil
}
