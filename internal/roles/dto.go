package roles

import (
	"github.com/mentorhub/mentorhub/internal"
	"github.com/mentorhub/mentorhub/internal/core/common/validation"
)

// AssignRoleDTO is the transport shape for replacing a user's role.
type AssignRoleDTO struct {
	Role   string `json:"role"`
	Status string `json:"status,omitempty"`
}

func (d *AssignRoleDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("role", d.Role).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	if !Name(d.Role).Valid() {
		return internal.ErrInvalidRole
	}
	if d.Status != "" && !MentorStatus(d.Status).Valid() {
		return internal.NewValidationError("invalid mentor status", internal.ErrCodeInvalidMentorStatus)
	}
	return nil
}

// CreateAdminDTO is the transport shape for the explicit admin-creation path.
type CreateAdminDTO struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

func (d *CreateAdminDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("user_id", d.UserID).Required()
	v.Field("email", d.Email).Required().Email()
	v.Field("name", d.Name).Required().MaxLength(200)
	return v.Validate()
}

// EffectiveRoleResponse is returned by the role resolution endpoints.
type EffectiveRoleResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
