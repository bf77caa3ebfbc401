package roles

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/mentorhub/mentorhub/internal"
	"github.com/mentorhub/mentorhub/internal/transport"
	"github.com/mentorhub/mentorhub/pkg/logger"
)

type ServiceAPI interface {
	ResolveRole(ctx context.Context, userID string) (EffectiveRole, error)
	AssignRole(ctx context.Context, userID string, name Name, status MentorStatus) error
	RemoveAllRoles(ctx context.Context, userID string) error
	CreateAdminUser(ctx context.Context, userID, email, name string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetMyRole resolves the caller's own effective role.
func (h *Handler) GetMyRole(w http.ResponseWriter, r *http.Request) {
	principal, ok := internal.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	role, err := h.Service.ResolveRole(r.Context(), principal.UserID)
	if err != nil {
		h.Logger.Error("GetMyRole: resolution failed", "error", err, "user_id", principal.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, EffectiveRoleResponse{
		UserID: principal.UserID,
		Role:   role.String(),
	})
}

// GetUserRole resolves another user's effective role, admin-gated by the router.
func (h *Handler) GetUserRole(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		h.WriteError(w, http.StatusBadRequest, "missing user id")
		return
	}

	role, err := h.Service.ResolveRole(r.Context(), userID)
	if err != nil {
		h.Logger.Error("GetUserRole: resolution failed", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, EffectiveRoleResponse{
		UserID: userID,
		Role:   role.String(),
	})
}

// AssignUserRole replaces the target user's role.
func (h *Handler) AssignUserRole(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		h.WriteError(w, http.StatusBadRequest, "missing user id")
		return
	}

	var dto AssignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.AssignRole(r.Context(), userID, Name(dto.Role), MentorStatus(dto.Status)); err != nil {
		h.Logger.Error("AssignUserRole: service error", "error", err, "user_id", userID, "role", dto.Role)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("AssignUserRole: role replaced", "user_id", userID, "role", dto.Role)
	w.WriteHeader(http.StatusNoContent)
}

// RemoveUserRoles strips every role and profile row from the target user.
func (h *Handler) RemoveUserRoles(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		h.WriteError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := h.Service.RemoveAllRoles(r.Context(), userID); err != nil {
		h.Logger.Error("RemoveUserRoles: service error", "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("RemoveUserRoles: roles removed", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// CreateAdmin grants the admin role through the explicit creation path.
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var dto CreateAdminDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.CreateAdminUser(r.Context(), dto.UserID, dto.Email, dto.Name); err != nil {
		h.Logger.Error("CreateAdmin: service error", "error", err, "user_id", dto.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateAdmin: admin created", "user_id", dto.UserID, "email", dto.Email)
	w.WriteHeader(http.StatusCreated)
}
