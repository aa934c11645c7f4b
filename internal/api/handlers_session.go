package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/bloomworks/bloom-practice/internal/api/respond"
	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/services"
	"github.com/bloomworks/bloom-practice/internal/timeutil"
)

// SessionHandler is a thin HTTP transport over SessionService.
type SessionHandler struct {
	svc *services.SessionService
}

func NewSessionHandler(svc *services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// CreateSession POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KidID         string      `json:"kidId"`
		TherapistID   *string     `json:"therapistId"`
		ScheduledDate interface{} `json:"scheduledDate"`
		Type          string      `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	sess, err := h.svc.Schedule(r.Context(), &model.Session{
		KidID:         req.KidID,
		TherapistID:   req.TherapistID,
		ScheduledDate: timeutil.Normalize(req.ScheduledDate),
		Type:          req.Type,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, sess)
}

// CreateRecurringSessions POST /api/sessions/recurring
func (h *SessionHandler) CreateRecurringSessions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		KidID       string      `json:"kidId"`
		TherapistID *string     `json:"therapistId"`
		Type        string      `json:"type"`
		StartDate   interface{} `json:"startDate"`
		Until       interface{} `json:"until"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	sessions, err := h.svc.ScheduleRecurring(r.Context(), req.KidID, req.TherapistID, req.Type,
		timeutil.Normalize(req.StartDate), timeutil.Normalize(req.Until))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"sessions": sessions, "count": len(sessions)})
}

// GetSession GET /api/sessions/{sessionId}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.Get(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess)
}

// ListKidSessions GET /api/kids/{kidId}/sessions?status=
func (h *SessionHandler) ListKidSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.ListForKid(r.Context(), model.ListSessionsRequest{
		KidID:  mux.Vars(r)["kidId"],
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions, "count": len(sessions)})
}

// UpdateSession PATCH /api/sessions/{sessionId}
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	sess, err := h.svc.Update(r.Context(), mux.Vars(r)["sessionId"], fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess)
}

// DeleteSession DELETE /api/sessions/{sessionId}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["sessionId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAlerts GET /api/alerts — the caller's overdue sessions.
func (h *SessionHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	alerts, err := h.svc.Alerts(r.Context(), actor.AdminID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"alerts": alerts, "count": len(alerts)})
}
