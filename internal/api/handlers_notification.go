package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/bloomworks/bloom-practice/internal/api/respond"
	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/services"
)

// NotificationHandler covers admin-to-recipient notifications.
type NotificationHandler struct {
	svc *services.NotificationService
}

func NewNotificationHandler(svc *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// CreateNotification POST /api/notifications — sent by the caller.
func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req struct {
		RecipientType string `json:"recipientType"`
		RecipientID   string `json:"recipientId"`
		KidID         string `json:"kidId"`
		Message       string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	note, err := h.svc.Create(r.Context(), &model.Notification{
		RecipientType: req.RecipientType,
		RecipientID:   req.RecipientID,
		KidID:         req.KidID,
		Message:       req.Message,
		AdminID:       actor.AdminID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, note)
}

// ListNotifications GET /api/notifications?recipientType=&recipientId=
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	recipientType := r.URL.Query().Get("recipientType")
	recipientID := r.URL.Query().Get("recipientId")
	if recipientType == "" || recipientID == "" {
		respond.WriteBadRequest(w, "recipientType and recipientId are required")
		return
	}
	notes, err := h.svc.ListForRecipient(r.Context(), recipientType, recipientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notifications": notes, "count": len(notes)})
}

// ListAdminNotifications GET /api/notifications/admin — the caller's sent
// notifications that they have not hidden.
func (h *NotificationHandler) ListAdminNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	notes, err := h.svc.ListForAdmin(r.Context(), actor.AdminID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notifications": notes, "count": len(notes)})
}

// DismissNotification POST /api/notifications/{notificationId}/dismiss
func (h *NotificationHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Dismiss(r.Context(), mux.Vars(r)["notificationId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DismissNotificationByAdmin POST /api/notifications/{notificationId}/dismiss-admin
func (h *NotificationHandler) DismissNotificationByAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	if err := h.svc.DismissByAdmin(r.Context(), mux.Vars(r)["notificationId"], actor.AdminID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
