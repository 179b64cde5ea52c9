package notif

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"parentforum/internal/common"
)

type NotificationUsecase interface {
	List(ctx context.Context, viewerID string) ([]NotificationView, error)
	MarkAllRead(ctx context.Context, viewerID string) error
}

type NotificationHandler struct {
	Svc NotificationUsecase
}

func NewNotificationHandler(svc NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{Svc: svc}
}

func (h *NotificationHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/notifications", h.List).Methods("GET")
	r.HandleFunc("/notifications/read", h.MarkAllRead).Methods("PATCH")
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := common.RequireViewer(w, r)
	if !ok {
		return
	}
	views, err := h.Svc.List(r.Context(), viewer.ID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"notifications": views})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	viewer, ok := common.RequireViewer(w, r)
	if !ok {
		return
	}
	if err := h.Svc.MarkAllRead(r.Context(), viewer.ID); err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
