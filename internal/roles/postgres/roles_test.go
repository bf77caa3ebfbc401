package postgres

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	profileDatamodel "github.com/mentorhub/mentorhub/internal/core/datamodel/profile"
	roleDatamodel "github.com/mentorhub/mentorhub/internal/core/datamodel/role"
	"github.com/mentorhub/mentorhub/internal/roles"
)

func TestRolesRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RolesRepository Suite")
}

var _ = Describe("RolesRepository", func() {
	var (
		db   *gorm.DB
		repo roles.RepositoryAPI
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&roleDatamodel.Role{},
			&roleDatamodel.UserRole{},
			&profileDatamodel.AdminProfile{},
			&profileDatamodel.MentorProfile{},
			&profileDatamodel.MenteeProfile{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = NewRolesRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	seedCatalog := func() map[roles.Name]int64 {
		ids := make(map[roles.Name]int64)
		for _, name := range roles.CatalogNames {
			role, err := repo.CreateRole(ctx, name)
			Expect(err).NotTo(HaveOccurred())
			ids[name] = role.ID
		}
		return ids
	}

	Describe("role catalog", func() {
		It("should return nil for a role that does not exist", func() {
			role, err := repo.GetRoleByName(ctx, roles.Admin)

			Expect(err).NotTo(HaveOccurred())
			Expect(role).To(BeNil())
		})

		It("should create and look up roles by name", func() {
			created, err := repo.CreateRole(ctx, roles.Mentor)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))

			found, err := repo.GetRoleByName(ctx, roles.Mentor)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.ID).To(Equal(created.ID))
		})
	})

	Describe("assignments", func() {
		It("should join role names for a user", func() {
			ids := seedCatalog()
			Expect(repo.InsertAssignment(ctx, "user-1", ids[roles.Mentee])).To(Succeed())

			names, err := repo.GetRoleNamesForUser(ctx, "user-1")

			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(ConsistOf(roles.Mentee))
		})

		It("should report assignment existence", func() {
			ids := seedCatalog()
			Expect(repo.InsertAssignment(ctx, "user-1", ids[roles.Mentor])).To(Succeed())

			has, err := repo.HasAssignment(ctx, "user-1", ids[roles.Mentor])
			Expect(err).NotTo(HaveOccurred())
			Expect(has).To(BeTrue())

			has, err = repo.HasAssignment(ctx, "user-1", ids[roles.Admin])
			Expect(err).NotTo(HaveOccurred())
			Expect(has).To(BeFalse())
		})

		It("should reject a second assignment for the same user", func() {
			ids := seedCatalog()
			Expect(repo.InsertAssignment(ctx, "user-1", ids[roles.Mentee])).To(Succeed())

			err := repo.InsertAssignment(ctx, "user-1", ids[roles.Mentor])

			Expect(err).To(HaveOccurred())
		})

		It("should delete all assignments for a user", func() {
			ids := seedCatalog()
			Expect(repo.InsertAssignment(ctx, "user-1", ids[roles.Mentee])).To(Succeed())

			Expect(repo.DeleteAssignments(ctx, "user-1")).To(Succeed())

			names, err := repo.GetRoleNamesForUser(ctx, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(BeEmpty())
		})

		It("should count assignments grouped by role", func() {
			ids := seedCatalog()
			Expect(repo.InsertAssignment(ctx, "user-1", ids[roles.Mentee])).To(Succeed())
			Expect(repo.InsertAssignment(ctx, "user-2", ids[roles.Mentee])).To(Succeed())
			Expect(repo.InsertAssignment(ctx, "user-3", ids[roles.Admin])).To(Succeed())

			counts, err := repo.CountAssignmentsByRole(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(counts[roles.Mentee]).To(Equal(int64(2)))
			Expect(counts[roles.Admin]).To(Equal(int64(1)))
		})
	})

	Describe("profiles", func() {
		It("should return nil for a missing mentor profile", func() {
			prof, err := repo.GetMentorProfile(ctx, "nobody")

			Expect(err).NotTo(HaveOccurred())
			Expect(prof).To(BeNil())
		})

		It("should insert then update a mentor profile on upsert", func() {
			Expect(repo.UpsertMentorProfile(ctx, "user-1", roles.MentorPending)).To(Succeed())
			Expect(repo.UpsertMentorProfile(ctx, "user-1", roles.MentorApproved)).To(Succeed())

			prof, err := repo.GetMentorProfile(ctx, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(prof.Status).To(Equal("approved"))

			var count int64
			Expect(db.Model(&profileDatamodel.MentorProfile{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("should not duplicate mentee profiles on repeated ensure", func() {
			Expect(repo.EnsureMenteeProfile(ctx, "user-1")).To(Succeed())
			Expect(repo.EnsureMenteeProfile(ctx, "user-1")).To(Succeed())

			var count int64
			Expect(db.Model(&profileDatamodel.MenteeProfile{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("should fail a strict admin profile insert on duplicates", func() {
			Expect(repo.InsertAdminProfile(ctx, "user-1", "a@b.c", "A")).To(Succeed())

			err := repo.InsertAdminProfile(ctx, "user-1", "a@b.c", "A")

			Expect(err).To(HaveOccurred())
		})

		It("should delete every profile row for a user", func() {
			Expect(repo.UpsertMentorProfile(ctx, "user-1", roles.MentorPending)).To(Succeed())
			Expect(repo.EnsureMenteeProfile(ctx, "user-1")).To(Succeed())
			Expect(repo.InsertAdminProfile(ctx, "user-1", "a@b.c", "A")).To(Succeed())

			Expect(repo.DeleteProfiles(ctx, "user-1")).To(Succeed())

			prof, err := repo.GetMentorProfile(ctx, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(prof).To(BeNil())
		})

		It("should list profile user ids per role", func() {
			Expect(repo.UpsertMentorProfile(ctx, "m-1", roles.MentorPending)).To(Succeed())
			Expect(repo.UpsertMentorProfile(ctx, "m-2", roles.MentorApproved)).To(Succeed())
			Expect(repo.EnsureMenteeProfile(ctx, "e-1")).To(Succeed())

			mentorIDs, err := repo.ListProfileUserIDs(ctx, roles.Mentor)
			Expect(err).NotTo(HaveOccurred())
			Expect(mentorIDs).To(ConsistOf("m-1", "m-2"))

			menteeIDs, err := repo.ListProfileUserIDs(ctx, roles.Mentee)
			Expect(err).NotTo(HaveOccurred())
			Expect(menteeIDs).To(ConsistOf("e-1"))
		})
	})

	Describe("Transaction", func() {
		It("should roll back every write when fn fails", func() {
			ids := seedCatalog()

			err := repo.Transaction(ctx, func(tx roles.RepositoryAPI) error {
				if err := tx.InsertAssignment(ctx, "user-1", ids[roles.Admin]); err != nil {
					return err
				}
				if err := tx.InsertAdminProfile(ctx, "user-1", "a@b.c", "A"); err != nil {
					return err
				}
				return context.Canceled
			})
			Expect(err).To(HaveOccurred())

			names, err := repo.GetRoleNamesForUser(ctx, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(BeEmpty())

			var count int64
			Expect(db.Model(&profileDatamodel.AdminProfile{}).Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(0)))
		})

		It("should commit when fn succeeds", func() {
			ids := seedCatalog()

			err := repo.Transaction(ctx, func(tx roles.RepositoryAPI) error {
				return tx.InsertAssignment(ctx, "user-1", ids[roles.Mentee])
			})
			Expect(err).NotTo(HaveOccurred())

			names, err := repo.GetRoleNamesForUser(ctx, "user-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(names).To(ConsistOf(roles.Mentee))
		})
	})
})
