package mentors

import (
	"context"
	"log/slog"

	"github.com/mentorhub/mentorhub/internal"
	"github.com/mentorhub/mentorhub/internal/roles"
)

type RepositoryAPI interface {
	GetByUserID(ctx context.Context, userID string) (*Application, error)
	ListByStatus(ctx context.Context, status roles.MentorStatus) ([]*Application, error)
	ListAll(ctx context.Context) ([]*Application, error)
	UpdateStatus(ctx context.Context, userID string, status roles.MentorStatus) error
}

// Service owns the mentor application review workflow. It only ever touches
// mentor_data.status; the role resolver picks the change up on its next read.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns applications, filtered by status when one is given.
func (s *Service) List(ctx context.Context, status roles.MentorStatus) ([]*Application, error) {
	if status == "" {
		apps, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, internal.NewStoreError("failed to list mentor applications", err)
		}
		return apps, nil
	}
	if !status.Valid() {
		return nil, internal.NewValidationError("invalid mentor status", internal.ErrCodeInvalidMentorStatus)
	}
	apps, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, internal.NewStoreError("failed to list mentor applications", err)
	}
	return apps, nil
}

// Approve activates the mentor: the resolver reports full mentor privilege
// from the next check on.
func (s *Service) Approve(ctx context.Context, userID string) error {
	return s.transition(ctx, userID, roles.MentorApproved)
}

// Reject turns the application down; the user keeps the assignment row but
// resolves to no role until re-decided.
func (s *Service) Reject(ctx context.Context, userID string) error {
	return s.transition(ctx, userID, roles.MentorRejected)
}

// RequestChanges sends the application back to the applicant.
func (s *Service) RequestChanges(ctx context.Context, userID string) error {
	return s.transition(ctx, userID, roles.MentorChangesRequested)
}

// SoftDelete marks the profile deleted without removing the row.
func (s *Service) SoftDelete(ctx context.Context, userID string) error {
	return s.transition(ctx, userID, roles.MentorDeleted)
}

func (s *Service) transition(ctx context.Context, userID string, target roles.MentorStatus) error {
	if userID == "" {
		return internal.NewValidationFieldError("user_id", "user_id is required", internal.ErrCodeInvalidUserID)
	}

	app, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return internal.NewStoreError("failed to load mentor application", err)
	}
	if app == nil {
		return internal.NewNotFoundError("mentor application not found", internal.ErrCodeMentorNotFound)
	}
	if !app.CanTransitionTo(target) {
		return internal.NewConflictError("mentor application cannot be re-decided", internal.ErrCodeInvalidMentorStatus)
	}

	if err := s.repo.UpdateStatus(ctx, userID, target); err != nil {
		return internal.NewStoreError("failed to update mentor status", err)
	}

	s.logger.Info("mentor application status changed",
		"user_id", userID,
		"from", app.Status,
		"to", target)
	return nil
}
