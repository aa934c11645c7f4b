package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/bloomworks/bloom-practice/internal/api/respond"
	"github.com/bloomworks/bloom-practice/internal/api/validate"
	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/services"
)

// PractitionerHandler covers practitioners and their kid links.
type PractitionerHandler struct {
	svc *services.PractitionerService
}

func NewPractitionerHandler(svc *services.PractitionerService) *PractitionerHandler {
	return &PractitionerHandler{svc: svc}
}

// CreatePractitioner POST /api/practitioners
func (h *PractitionerHandler) CreatePractitioner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Role  string `json:"role"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.Name(req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.OptionalEmail(req.Email); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	pr, err := h.svc.Create(r.Context(), &model.Practitioner{
		Name:  req.Name,
		Role:  req.Role,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, pr)
}

// ListPractitioners GET /api/practitioners
func (h *PractitionerHandler) ListPractitioners(w http.ResponseWriter, r *http.Request) {
	practitioners, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"practitioners": practitioners, "count": len(practitioners)})
}

// GetPractitioner GET /api/practitioners/{practitionerId}
func (h *PractitionerHandler) GetPractitioner(w http.ResponseWriter, r *http.Request) {
	pr, err := h.svc.Get(r.Context(), mux.Vars(r)["practitionerId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, pr)
}

// UpdatePractitioner PATCH /api/practitioners/{practitionerId}
func (h *PractitionerHandler) UpdatePractitioner(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	pr, err := h.svc.Update(r.Context(), mux.Vars(r)["practitionerId"], fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, pr)
}

// DeletePractitioner DELETE /api/practitioners/{practitionerId}
func (h *PractitionerHandler) DeletePractitioner(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["practitionerId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LinkPractitioner POST /api/kids/{kidId}/practitioners/{practitionerId}
func (h *PractitionerHandler) LinkPractitioner(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.Link(r.Context(), vars["kidId"], vars["practitionerId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"kidId":          vars["kidId"],
		"practitionerId": vars["practitionerId"],
	})
}

// UnlinkPractitioner DELETE /api/kids/{kidId}/practitioners/{practitionerId}
func (h *PractitionerHandler) UnlinkPractitioner(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.svc.Unlink(r.Context(), vars["kidId"], vars["practitionerId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListKidPractitioners GET /api/kids/{kidId}/practitioners
func (h *PractitionerHandler) ListKidPractitioners(w http.ResponseWriter, r *http.Request) {
	practitioners, err := h.svc.ListForKid(r.Context(), mux.Vars(r)["kidId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"practitioners": practitioners, "count": len(practitioners)})
}
