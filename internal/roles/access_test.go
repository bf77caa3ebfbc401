package roles_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mentorhub/mentorhub/internal/roles"
)

var _ = Describe("RoleAccess", func() {
	Describe("HasRole", func() {
		It("should let every role satisfy itself", func() {
			for _, role := range []roles.EffectiveRole{
				roles.RoleMentee, roles.RolePendingMentor, roles.RoleMentor, roles.RoleAdmin,
			} {
				Expect(roles.HasRole(role, role)).To(BeTrue())
			}
		})

		It("should let higher roles satisfy lower requirements", func() {
			Expect(roles.HasRole(roles.RoleAdmin, roles.RoleMentor)).To(BeTrue())
			Expect(roles.HasRole(roles.RoleAdmin, roles.RoleMentee)).To(BeTrue())
			Expect(roles.HasRole(roles.RoleMentor, roles.RolePendingMentor)).To(BeTrue())
			Expect(roles.HasRole(roles.RoleMentor, roles.RoleMentee)).To(BeTrue())
			Expect(roles.HasRole(roles.RolePendingMentor, roles.RoleMentee)).To(BeTrue())
		})

		It("should refuse lower roles for higher requirements", func() {
			Expect(roles.HasRole(roles.RoleMentee, roles.RolePendingMentor)).To(BeFalse())
			Expect(roles.HasRole(roles.RoleMentee, roles.RoleAdmin)).To(BeFalse())
			Expect(roles.HasRole(roles.RolePendingMentor, roles.RoleMentor)).To(BeFalse())
			Expect(roles.HasRole(roles.RoleMentor, roles.RoleAdmin)).To(BeFalse())
		})

		It("should fail closed for no role or unknown roles", func() {
			Expect(roles.HasRole(roles.RoleNone, roles.RoleMentee)).To(BeFalse())
			Expect(roles.HasRole(roles.EffectiveRole("root"), roles.RoleMentee)).To(BeFalse())
			Expect(roles.HasRole(roles.RoleAdmin, roles.EffectiveRole("root"))).To(BeFalse())
		})
	})

	Describe("IsPathAccessible", func() {
		It("should open public prefixes to every role in the hierarchy", func() {
			for _, role := range []roles.EffectiveRole{
				roles.RoleMentee, roles.RolePendingMentor, roles.RoleMentor, roles.RoleAdmin,
			} {
				Expect(roles.IsPathAccessible(role, "/dashboard")).To(BeTrue())
				Expect(roles.IsPathAccessible(role, "/profile/edit")).To(BeTrue())
				Expect(roles.IsPathAccessible(role, "/settings")).To(BeTrue())
			}
		})

		It("should deny everything to a user with no role", func() {
			Expect(roles.IsPathAccessible(roles.RoleNone, "/dashboard")).To(BeFalse())
			Expect(roles.IsPathAccessible(roles.RoleNone, "/mentee")).To(BeFalse())
		})

		It("should scope mentees to the mentee area", func() {
			Expect(roles.IsPathAccessible(roles.RoleMentee, "/mentee/sessions")).To(BeTrue())
			Expect(roles.IsPathAccessible(roles.RoleMentee, "/mentor")).To(BeFalse())
			Expect(roles.IsPathAccessible(roles.RoleMentee, "/admin")).To(BeFalse())
		})

		It("should scope pending mentors to the application area only", func() {
			Expect(roles.IsPathAccessible(roles.RolePendingMentor, "/mentor/application")).To(BeTrue())
			Expect(roles.IsPathAccessible(roles.RolePendingMentor, "/mentor/sessions")).To(BeFalse())
		})

		It("should give mentors the whole mentor area", func() {
			Expect(roles.IsPathAccessible(roles.RoleMentor, "/mentor/sessions")).To(BeTrue())
			Expect(roles.IsPathAccessible(roles.RoleMentor, "/admin")).To(BeFalse())
			Expect(roles.IsPathAccessible(roles.RoleMentor, "/mentee")).To(BeFalse())
		})

		It("should give admins mentor and mentee areas on top of admin", func() {
			Expect(roles.IsPathAccessible(roles.RoleAdmin, "/admin/users")).To(BeTrue())
			Expect(roles.IsPathAccessible(roles.RoleAdmin, "/mentor/sessions")).To(BeTrue())
			Expect(roles.IsPathAccessible(roles.RoleAdmin, "/mentee/progress")).To(BeTrue())
		})
	})
})
