package roles

import (
	"context"
	"log/slog"

	"github.com/mentorhub/mentorhub/internal"
	profileDatamodel "github.com/mentorhub/mentorhub/internal/core/datamodel/profile"
	roleDatamodel "github.com/mentorhub/mentorhub/internal/core/datamodel/role"
	"github.com/mentorhub/mentorhub/internal/core/events"
)

// RepositoryAPI is the storage surface the role subsystem needs. Lookup
// methods return nil (not an error) when a row is absent; Transaction runs fn
// against a repository bound to one datastore transaction.
type RepositoryAPI interface {
	GetRoleByName(ctx context.Context, name Name) (*roleDatamodel.Role, error)
	CreateRole(ctx context.Context, name Name) (*roleDatamodel.Role, error)

	GetRoleNamesForUser(ctx context.Context, userID string) ([]Name, error)
	HasAssignment(ctx context.Context, userID string, roleID int64) (bool, error)
	InsertAssignment(ctx context.Context, userID string, roleID int64) error
	DeleteAssignments(ctx context.Context, userID string) error
	CountAssignmentsByRole(ctx context.Context) (map[Name]int64, error)

	GetMentorProfile(ctx context.Context, userID string) (*profileDatamodel.MentorProfile, error)
	UpsertMentorProfile(ctx context.Context, userID string, status MentorStatus) error
	EnsureMenteeProfile(ctx context.Context, userID string) error
	EnsureAdminProfile(ctx context.Context, userID, email, name string) error
	InsertAdminProfile(ctx context.Context, userID, email, name string) error
	DeleteProfiles(ctx context.Context, userID string) error
	ListProfileUserIDs(ctx context.Context, role Name) ([]string, error)

	Transaction(ctx context.Context, fn func(RepositoryAPI) error) error
}

// Service owns role resolution and every mutation of user_roles and its
// paired profile rows. Other packages treat the resolved role as read-only.
type Service struct {
	repo   RepositoryAPI
	bus    *events.EventBus
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// ResolveRole computes the effective role for userID from current stored
// state. No caching: every call re-reads the assignment table. Store failures
// come back as errors, never as RoleNone.
func (s *Service) ResolveRole(ctx context.Context, userID string) (EffectiveRole, error) {
	names, err := s.repo.GetRoleNamesForUser(ctx, userID)
	if err != nil {
		return RoleNone, internal.NewStoreError("failed to fetch role assignments", err)
	}
	if len(names) == 0 {
		return RoleNone, nil
	}

	assigned := make(map[Name]bool, len(names))
	for _, n := range names {
		assigned[n] = true
	}

	switch {
	case assigned[Admin]:
		return RoleAdmin, nil

	case assigned[Mentor]:
		prof, err := s.repo.GetMentorProfile(ctx, userID)
		if err != nil {
			return RoleNone, internal.NewStoreError("failed to fetch mentor profile", err)
		}
		if prof == nil {
			s.logger.Warn("mentor assignment without a mentor profile", "user_id", userID)
			return RoleNone, nil
		}
		switch MentorStatus(prof.Status) {
		case MentorApproved:
			return RoleMentor, nil
		case MentorPending:
			return RolePendingMentor, nil
		default:
			// rejected, changes_requested, deleted: the assignment is
			// orphaned and confers no privilege
			return RoleNone, nil
		}

	case assigned[Mentee]:
		return RoleMentee, nil
	}

	s.logger.Warn("assignment to a role outside the catalog", "user_id", userID, "roles", names)
	return RoleNone, nil
}

// AssignRole replaces the user's current role with name, keeping the paired
// profile row consistent. The whole sequence runs in one transaction, so the
// delete-then-insert window of the legacy design cannot be observed.
func (s *Service) AssignRole(ctx context.Context, userID string, name Name, status MentorStatus) error {
	if userID == "" {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeInvalidUserID)
	}
	if !name.Valid() {
		return internal.ErrInvalidRole
	}
	if name == Mentor {
		if status == "" {
			status = MentorPending
		}
		if !status.Valid() {
			return internal.NewValidationError("invalid mentor status", internal.ErrCodeInvalidMentorStatus)
		}
	}

	err := s.repo.Transaction(ctx, func(tx RepositoryAPI) error {
		role, err := tx.GetRoleByName(ctx, name)
		if err != nil {
			return internal.NewStoreError("failed to look up role", err)
		}
		if role == nil {
			return internal.ErrRoleNotFound
		}

		if err := tx.DeleteAssignments(ctx, userID); err != nil {
			return internal.NewStoreError("failed to clear previous assignments", err)
		}
		if err := tx.InsertAssignment(ctx, userID, role.ID); err != nil {
			return internal.NewStoreError("failed to insert role assignment", err)
		}

		switch name {
		case Mentor:
			if err := tx.UpsertMentorProfile(ctx, userID, status); err != nil {
				return internal.NewStoreError("failed to upsert mentor profile", err)
			}
		case Mentee:
			if err := tx.EnsureMenteeProfile(ctx, userID); err != nil {
				return internal.NewStoreError("failed to ensure mentee profile", err)
			}
		case Admin:
			if err := tx.EnsureAdminProfile(ctx, userID, placeholderEmail(userID), placeholderName); err != nil {
				return internal.NewStoreError("failed to ensure admin profile", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("role assigned", "user_id", userID, "role", name, "status", status)
	s.publish(ctx, NewRoleAssignedEvent(userID, name, status))
	return nil
}

// RemoveAllRoles strips every assignment and all three profile rows for the
// user. Idempotent: a user with no roles is a no-op success.
func (s *Service) RemoveAllRoles(ctx context.Context, userID string) error {
	if userID == "" {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeInvalidUserID)
	}

	err := s.repo.Transaction(ctx, func(tx RepositoryAPI) error {
		if err := tx.DeleteAssignments(ctx, userID); err != nil {
			return internal.NewStoreError("failed to delete role assignments", err)
		}
		if err := tx.DeleteProfiles(ctx, userID); err != nil {
			return internal.NewStoreError("failed to delete profile rows", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("all roles removed", "user_id", userID)
	s.publish(ctx, NewRolesRemovedEvent(userID))
	return nil
}

// CreateAdminUser grants the admin role with an explicit duplicate check and
// a real admin profile (no placeholders). The assignment insert and profile
// insert share a transaction, so a profile failure cannot leave an orphaned
// grant behind.
func (s *Service) CreateAdminUser(ctx context.Context, userID, email, name string) error {
	if userID == "" {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeInvalidUserID)
	}
	if email == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeInvalidEmail)
	}
	if name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetRoleNamesForUser(ctx, userID)
	if err != nil {
		return internal.NewStoreError("failed to check existing roles", err)
	}
	for _, n := range existing {
		if n == Admin {
			return internal.ErrAlreadyAdmin
		}
	}

	err = s.repo.Transaction(ctx, func(tx RepositoryAPI) error {
		role, err := tx.GetRoleByName(ctx, Admin)
		if err != nil {
			return internal.NewStoreError("failed to look up admin role", err)
		}
		if role == nil {
			return internal.ErrRoleNotFound
		}

		if err := tx.DeleteAssignments(ctx, userID); err != nil {
			return internal.NewStoreError("failed to clear previous assignments", err)
		}
		if err := tx.InsertAssignment(ctx, userID, role.ID); err != nil {
			return internal.NewStoreError("failed to insert admin assignment", err)
		}
		if err := tx.InsertAdminProfile(ctx, userID, email, name); err != nil {
			return internal.NewStoreError("failed to insert admin profile", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("admin user created", "user_id", userID, "email", email)
	s.publish(ctx, NewAdminCreatedEvent(userID, email))
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish role event", "event_type", event.EventType(), "error", err)
	}
}

const placeholderName = "Admin User"

func placeholderEmail(userID string) string {
	return userID + "@placeholder.local"
}
