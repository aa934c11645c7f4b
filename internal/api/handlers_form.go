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

// FormHandler covers therapy session reports.
type FormHandler struct {
	svc *services.FormService
}

func NewFormHandler(svc *services.FormService) *FormHandler { return &FormHandler{svc: svc} }

// SubmitForm POST /api/forms
func (h *FormHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID       string                 `json:"sessionId"`
		KidID           string                 `json:"kidId"`
		TherapistName   string                 `json:"therapistName"`
		SessionDate     interface{}            `json:"sessionDate"`
		Cooperation     int                    `json:"cooperation"`
		SessionDuration int                    `json:"sessionDuration"`
		SittingDuration int                    `json:"sittingDuration"`
		Communication   string                 `json:"communication"`
		Notes           string                 `json:"notes"`
		GoalsWorkedOn   []model.GoalSnapshot   `json:"goalsWorkedOn"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	form, err := h.svc.Submit(r.Context(), &model.Form{
		SessionID:       req.SessionID,
		KidID:           req.KidID,
		TherapistName:   req.TherapistName,
		SessionDate:     timeutil.Normalize(req.SessionDate),
		Cooperation:     req.Cooperation,
		SessionDuration: req.SessionDuration,
		SittingDuration: req.SittingDuration,
		Communication:   req.Communication,
		Notes:           req.Notes,
		GoalsWorkedOn:   req.GoalsWorkedOn,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, form)
}

// GetForm GET /api/forms/{formId}
func (h *FormHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.svc.Get(r.Context(), mux.Vars(r)["formId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, form)
}

// ListKidForms GET /api/kids/{kidId}/forms?weekStart=
func (h *FormHandler) ListKidForms(w http.ResponseWriter, r *http.Request) {
	kidID := mux.Vars(r)["kidId"]
	var forms []*model.Form
	var err error
	if ws := r.URL.Query().Get("weekStart"); ws != "" {
		forms, err = h.svc.ListForWeek(r.Context(), kidID, timeutil.Normalize(ws))
	} else {
		forms, err = h.svc.ListForKid(r.Context(), kidID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"forms": forms, "count": len(forms)})
}

// UpdateForm PATCH /api/forms/{formId}
func (h *FormHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	form, err := h.svc.Update(r.Context(), mux.Vars(r)["formId"], fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, form)
}

// DeleteForm DELETE /api/forms/{formId}
func (h *FormHandler) DeleteForm(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["formId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
