package mentors

import (
	"time"

	"github.com/mentorhub/mentorhub/internal/roles"
)

// Application is the domain view of a mentor_data row as seen by the review
// workflow. Status drives what the role resolver reports for the user.
type Application struct {
	UserID     string             `json:"user_id"`
	Status     roles.MentorStatus `json:"status"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Bio        string             `json:"bio"`
	Expertise  string             `json:"expertise"`
	Experience string             `json:"experience"`
	LinkedIn   string             `json:"linkedin_url,omitempty"`
	Badge      string             `json:"badge,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// CanTransitionTo reports whether a review decision may move the application
// to target. A soft-deleted profile is terminal for the review workflow;
// everything else can be re-decided.
func (a *Application) CanTransitionTo(target roles.MentorStatus) bool {
	if !target.Valid() {
		return false
	}
	if a.Status == roles.MentorDeleted && target != roles.MentorDeleted {
		return false
	}
	return true
}
