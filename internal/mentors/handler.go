package mentors

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/mentorhub/mentorhub/internal/roles"
	"github.com/mentorhub/mentorhub/internal/transport"
	"github.com/mentorhub/mentorhub/pkg/logger"
)

type ServiceAPI interface {
	List(ctx context.Context, status roles.MentorStatus) ([]*Application, error)
	Approve(ctx context.Context, userID string) error
	Reject(ctx context.Context, userID string) error
	RequestChanges(ctx context.Context, userID string) error
	SoftDelete(ctx context.Context, userID string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	status := roles.MentorStatus(r.URL.Query().Get("status"))

	apps, err := h.Service.List(r.Context(), status)
	if err != nil {
		h.Logger.Error("ListApplications: service error", "error", err, "status", status)
		h.HandleServiceError(w, err)
		return
	}

	if apps == nil {
		apps = []*Application{}
	}
	h.WriteJSON(w, http.StatusOK, apps)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Approve, "approve")
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject, "reject")
}

func (h *Handler) RequestChanges(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.RequestChanges, "request_changes")
}

func (h *Handler) SoftDelete(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.SoftDelete, "delete")
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op func(context.Context, string) error, action string) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		h.WriteError(w, http.StatusBadRequest, "missing user id")
		return
	}

	if err := op(r.Context(), userID); err != nil {
		h.Logger.Error("mentor decision failed", "action", action, "error", err, "user_id", userID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("mentor decision applied", "action", action, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}
