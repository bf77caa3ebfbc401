package roles_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	profileDatamodel "github.com/mentorhub/mentorhub/internal/core/datamodel/profile"
	"github.com/mentorhub/mentorhub/internal/roles"
)

var _ = Describe("Migrator", func() {
	var (
		migrator *roles.Migrator
		mockRepo *mockRolesRepository
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = newMockRolesRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		migrator = roles.NewMigrator(mockRepo, logger)
		ctx = context.Background()
	})

	Describe("MigrateExistingRoles", func() {
		Context("with legacy profile rows and no assignments", func() {
			BeforeEach(func() {
				mockRepo.adminProfiles["admin-1"] = &profileDatamodel.AdminProfile{UserID: "admin-1"}
				mockRepo.mentorProfiles["mentor-1"] = &profileDatamodel.MentorProfile{UserID: "mentor-1", Status: "approved"}
				mockRepo.mentorProfiles["mentor-2"] = &profileDatamodel.MentorProfile{UserID: "mentor-2", Status: "pending"}
				mockRepo.menteeProfiles["mentee-1"] = true
			})

			It("should backfill one assignment per profile row", func() {
				report, err := migrator.MigrateExistingRoles(ctx)

				Expect(err).ToNot(HaveOccurred())
				Expect(report.Inserted[roles.Admin]).To(Equal(1))
				Expect(report.Inserted[roles.Mentor]).To(Equal(2))
				Expect(report.Inserted[roles.Mentee]).To(Equal(1))
				Expect(mockRepo.assignments).To(HaveLen(4))
			})

			It("should be idempotent across repeated runs", func() {
				first, err := migrator.MigrateExistingRoles(ctx)
				Expect(err).ToNot(HaveOccurred())
				Expect(first.Inserted[roles.Mentor]).To(Equal(2))

				second, err := migrator.MigrateExistingRoles(ctx)

				Expect(err).ToNot(HaveOccurred())
				Expect(second.Inserted).To(BeEmpty())
				Expect(second.Skipped[roles.Admin]).To(Equal(1))
				Expect(second.Skipped[roles.Mentor]).To(Equal(2))
				Expect(second.Skipped[roles.Mentee]).To(Equal(1))
				Expect(mockRepo.assignments).To(HaveLen(4))
			})
		})

		Context("with a user present in several profile tables", func() {
			BeforeEach(func() {
				mockRepo.mentorProfiles["dual-1"] = &profileDatamodel.MentorProfile{UserID: "dual-1", Status: "approved"}
				mockRepo.menteeProfiles["dual-1"] = true
			})

			It("should grant only the highest-precedence role", func() {
				report, err := migrator.MigrateExistingRoles(ctx)

				Expect(err).ToNot(HaveOccurred())
				Expect(report.Inserted[roles.Mentor]).To(Equal(1))
				Expect(report.Inserted[roles.Mentee]).To(BeZero())
				Expect(report.Skipped[roles.Mentee]).To(Equal(1))

				names, err := mockRepo.GetRoleNamesForUser(ctx, "dual-1")
				Expect(err).ToNot(HaveOccurred())
				Expect(names).To(ConsistOf(roles.Mentor))
			})

			It("should stay idempotent for the dual-profile user", func() {
				_, err := migrator.MigrateExistingRoles(ctx)
				Expect(err).ToNot(HaveOccurred())

				report, err := migrator.MigrateExistingRoles(ctx)

				Expect(err).ToNot(HaveOccurred())
				Expect(report.Inserted).To(BeEmpty())
				Expect(mockRepo.assignments["dual-1"]).To(HaveLen(1))
			})

			It("should skip a user who already holds a lower-precedence grant", func() {
				// an earlier partial run reached the mentee walk first
				mockRepo.assignments["dual-1"] = []int64{mockRepo.rolesByName[roles.Mentee].ID}

				report, err := migrator.MigrateExistingRoles(ctx)

				Expect(err).ToNot(HaveOccurred())
				Expect(report.Inserted[roles.Mentor]).To(BeZero())
				Expect(report.Skipped[roles.Mentor]).To(Equal(1))
				Expect(mockRepo.assignments["dual-1"]).To(HaveLen(1))
			})
		})

		Context("with a partially seeded role catalog", func() {
			BeforeEach(func() {
				delete(mockRepo.rolesByName, roles.Mentor)
				mockRepo.mentorProfiles["mentor-1"] = &profileDatamodel.MentorProfile{UserID: "mentor-1", Status: "pending"}
			})

			It("should seed the missing role before backfilling", func() {
				report, err := migrator.MigrateExistingRoles(ctx)

				Expect(err).ToNot(HaveOccurred())
				Expect(report.Seeded).To(ConsistOf(roles.Mentor))
				Expect(report.Inserted[roles.Mentor]).To(Equal(1))
			})
		})

		Context("when the store fails mid-run", func() {
			It("should return the error and stay resumable", func() {
				mockRepo.mentorProfiles["mentor-1"] = &profileDatamodel.MentorProfile{UserID: "mentor-1", Status: "pending"}
				mockRepo.listProfilesError = errors.New("connection reset")

				_, err := migrator.MigrateExistingRoles(ctx)
				Expect(err).To(HaveOccurred())

				mockRepo.listProfilesError = nil
				report, err := migrator.MigrateExistingRoles(ctx)
				Expect(err).ToNot(HaveOccurred())
				Expect(report.Inserted[roles.Mentor]).To(Equal(1))
			})
		})
	})

	Describe("VerifyMigration", func() {
		It("should count assignments per role", func() {
			mockRepo.adminProfiles["admin-1"] = &profileDatamodel.AdminProfile{UserID: "admin-1"}
			mockRepo.menteeProfiles["mentee-1"] = true
			mockRepo.menteeProfiles["mentee-2"] = true
			_, err := migrator.MigrateExistingRoles(ctx)
			Expect(err).ToNot(HaveOccurred())

			counts, err := migrator.VerifyMigration(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(counts[roles.Admin]).To(Equal(int64(1)))
			Expect(counts[roles.Mentee]).To(Equal(int64(2)))
		})
	})
})
