package roles

import (
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub/internal/core/events"
)

const (
	EventTypeRoleAssigned = "role.assigned"
	EventTypeRolesRemoved = "role.removed_all"
	EventTypeAdminCreated = "role.admin_created"
)

type RoleAssignedEvent struct {
	events.BaseEvent
	UserID string       `json:"user_id"`
	Role   Name         `json:"role"`
	Status MentorStatus `json:"status,omitempty"`
}

func NewRoleAssignedEvent(userID string, role Name, status MentorStatus) *RoleAssignedEvent {
	return &RoleAssignedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRoleAssigned,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"role":    string(role),
				"status":  string(status),
			},
		},
		UserID: userID,
		Role:   role,
		Status: status,
	}
}

type RolesRemovedEvent struct {
	events.BaseEvent
	UserID string `json:"user_id"`
}

func NewRolesRemovedEvent(userID string) *RolesRemovedEvent {
	return &RolesRemovedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRolesRemoved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
			},
		},
		UserID: userID,
	}
}

type AdminCreatedEvent struct {
	events.BaseEvent
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func NewAdminCreatedEvent(userID, email string) *AdminCreatedEvent {
	return &AdminCreatedEvent{
		BaseEvent: events.BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAdminCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id": userID,
				"email":   email,
			},
		},
		UserID: userID,
		Email:  email,
	}
}
