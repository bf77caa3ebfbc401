package roles

// Name is a catalog role name. The catalog is closed: only the three
// constants below are valid, anything else is rejected before it reaches
// the store.
type Name string

const (
	Admin  Name = "admin"
	Mentor Name = "mentor"
	Mentee Name = "mentee"
)

// CatalogNames lists every role the catalog must contain, in seeding order.
var CatalogNames = []Name{Admin, Mentor, Mentee}

func (n Name) Valid() bool {
	switch n {
	case Admin, Mentor, Mentee:
		return true
	}
	return false
}

func (n Name) String() string {
	return string(n)
}

// MentorStatus is the mentor_data application lifecycle. Only Approved and
// Pending translate into an effective role; the rest resolve to no role.
type MentorStatus string

const (
	MentorApproved         MentorStatus = "approved"
	MentorPending          MentorStatus = "pending"
	MentorRejected         MentorStatus = "rejected"
	MentorChangesRequested MentorStatus = "changes_requested"
	MentorDeleted          MentorStatus = "deleted"
)

func (s MentorStatus) Valid() bool {
	switch s {
	case MentorApproved, MentorPending, MentorRejected, MentorChangesRequested, MentorDeleted:
		return true
	}
	return false
}

func (s MentorStatus) String() string {
	return string(s)
}

// EffectiveRole is the single role resolved for a user at check time. It is
// derived, never stored; RoleNone is a legitimate outcome (no assignment or
// an orphaned one), distinct from a resolution failure.
type EffectiveRole string

const (
	RoleNone          EffectiveRole = ""
	RoleMentee        EffectiveRole = "mentee"
	RolePendingMentor EffectiveRole = "pending_mentor"
	RoleMentor        EffectiveRole = "mentor"
	RoleAdmin         EffectiveRole = "admin"
)

func (r EffectiveRole) String() string {
	return string(r)
}
