package mentors_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mentorhub/mentorhub/internal"
	"github.com/mentorhub/mentorhub/internal/mentors"
	"github.com/mentorhub/mentorhub/internal/roles"
)

func TestMentors(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Mentors Service Suite")
}

// Mock repository for testing
type mockMentorsRepository struct {
	applications map[string]*mentors.Application
	getError     error
	listError    error
	updateError  error
}

func newMockMentorsRepository() *mockMentorsRepository {
	return &mockMentorsRepository{
		applications: make(map[string]*mentors.Application),
	}
}

func (m *mockMentorsRepository) GetByUserID(_ context.Context, userID string) (*mentors.Application, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.applications[userID], nil
}

func (m *mockMentorsRepository) ListByStatus(_ context.Context, status roles.MentorStatus) ([]*mentors.Application, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var apps []*mentors.Application
	for _, app := range m.applications {
		if app.Status == status {
			apps = append(apps, app)
		}
	}
	return apps, nil
}

func (m *mockMentorsRepository) ListAll(_ context.Context) ([]*mentors.Application, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var apps []*mentors.Application
	for _, app := range m.applications {
		apps = append(apps, app)
	}
	return apps, nil
}

func (m *mockMentorsRepository) UpdateStatus(_ context.Context, userID string, status roles.MentorStatus) error {
	if m.updateError != nil {
		return m.updateError
	}
	if app, ok := m.applications[userID]; ok {
		app.Status = status
	}
	return nil
}

var _ = Describe("MentorsService", func() {
	var (
		service  *mentors.Service
		mockRepo *mockMentorsRepository
		ctx      context.Context
	)

	addApplication := func(userID string, status roles.MentorStatus) {
		mockRepo.applications[userID] = &mentors.Application{
			UserID: userID,
			Status: status,
			Name:   "Test Mentor",
			Email:  userID + "@example.com",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockMentorsRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = mentors.NewService(mockRepo, logger)
		ctx = context.Background()
	})

	Describe("List", func() {
		BeforeEach(func() {
			addApplication("m-1", roles.MentorPending)
			addApplication("m-2", roles.MentorPending)
			addApplication("m-3", roles.MentorApproved)
		})

		It("should list every application without a filter", func() {
			apps, err := service.List(ctx, "")

			Expect(err).ToNot(HaveOccurred())
			Expect(apps).To(HaveLen(3))
		})

		It("should filter by status", func() {
			apps, err := service.List(ctx, roles.MentorPending)

			Expect(err).ToNot(HaveOccurred())
			Expect(apps).To(HaveLen(2))
		})

		It("should reject a status outside the lifecycle", func() {
			_, err := service.List(ctx, roles.MentorStatus("archived"))

			Expect(err).To(HaveOccurred())
		})

		It("should wrap store failures", func() {
			mockRepo.listError = errors.New("connection refused")

			_, err := service.List(ctx, "")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeStoreError))
		})
	})

	Describe("review decisions", func() {
		BeforeEach(func() {
			addApplication("m-1", roles.MentorPending)
		})

		It("should approve a pending application", func() {
			Expect(service.Approve(ctx, "m-1")).To(Succeed())
			Expect(mockRepo.applications["m-1"].Status).To(Equal(roles.MentorApproved))
		})

		It("should reject a pending application", func() {
			Expect(service.Reject(ctx, "m-1")).To(Succeed())
			Expect(mockRepo.applications["m-1"].Status).To(Equal(roles.MentorRejected))
		})

		It("should send a pending application back for changes", func() {
			Expect(service.RequestChanges(ctx, "m-1")).To(Succeed())
			Expect(mockRepo.applications["m-1"].Status).To(Equal(roles.MentorChangesRequested))
		})

		It("should allow re-deciding a rejected application", func() {
			Expect(service.Reject(ctx, "m-1")).To(Succeed())
			Expect(service.Approve(ctx, "m-1")).To(Succeed())
			Expect(mockRepo.applications["m-1"].Status).To(Equal(roles.MentorApproved))
		})

		It("should return not found for a user without an application", func() {
			err := service.Approve(ctx, "ghost")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMentorNotFound))
		})

		It("should require a user id", func() {
			Expect(service.Approve(ctx, "")).ToNot(Succeed())
		})
	})

	Describe("SoftDelete", func() {
		BeforeEach(func() {
			addApplication("m-1", roles.MentorApproved)
		})

		It("should mark the application deleted and keep the row", func() {
			Expect(service.SoftDelete(ctx, "m-1")).To(Succeed())

			Expect(mockRepo.applications).To(HaveKey("m-1"))
			Expect(mockRepo.applications["m-1"].Status).To(Equal(roles.MentorDeleted))
		})

		It("should refuse to resurrect a deleted application", func() {
			Expect(service.SoftDelete(ctx, "m-1")).To(Succeed())

			err := service.Approve(ctx, "m-1")

			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})
	})
})
