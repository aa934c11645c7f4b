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

// MeetingFormHandler covers meeting report forms.
type MeetingFormHandler struct {
	svc *services.FormService
}

func NewMeetingFormHandler(svc *services.FormService) *MeetingFormHandler {
	return &MeetingFormHandler{svc: svc}
}

// SubmitMeetingForm POST /api/meeting-forms
func (h *MeetingFormHandler) SubmitMeetingForm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID     string      `json:"sessionId"`
		KidID         string      `json:"kidId"`
		SessionDate   interface{} `json:"sessionDate"`
		Attendees     []string    `json:"attendees"`
		Summary       string      `json:"summary"`
		BehaviorNotes string      `json:"behaviorNotes"`
		Decisions     string      `json:"decisions"`
		NextSteps     string      `json:"nextSteps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	form, err := h.svc.SubmitMeeting(r.Context(), &model.MeetingForm{
		SessionID:     req.SessionID,
		KidID:         req.KidID,
		SessionDate:   timeutil.Normalize(req.SessionDate),
		Attendees:     req.Attendees,
		Summary:       req.Summary,
		BehaviorNotes: req.BehaviorNotes,
		Decisions:     req.Decisions,
		NextSteps:     req.NextSteps,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, form)
}

// GetMeetingForm GET /api/meeting-forms/{formId}
func (h *MeetingFormHandler) GetMeetingForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.svc.GetMeeting(r.Context(), mux.Vars(r)["formId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, form)
}

// ListKidMeetingForms GET /api/kids/{kidId}/meeting-forms
func (h *MeetingFormHandler) ListKidMeetingForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.svc.ListMeetingsForKid(r.Context(), mux.Vars(r)["kidId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"meetingForms": forms, "count": len(forms)})
}

// UpdateMeetingForm PATCH /api/meeting-forms/{formId}
func (h *MeetingFormHandler) UpdateMeetingForm(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	form, err := h.svc.UpdateMeeting(r.Context(), mux.Vars(r)["formId"], fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, form)
}

// DeleteMeetingForm DELETE /api/meeting-forms/{formId}
func (h *MeetingFormHandler) DeleteMeetingForm(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMeeting(r.Context(), mux.Vars(r)["formId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
