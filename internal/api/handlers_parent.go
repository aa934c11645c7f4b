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

// ParentHandler covers guardian contacts.
type ParentHandler struct {
	svc *services.ParentService
}

func NewParentHandler(svc *services.ParentService) *ParentHandler { return &ParentHandler{svc: svc} }

// CreateParent POST /api/kids/{kidId}/parents
func (h *ParentHandler) CreateParent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
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
	parent, err := h.svc.Create(r.Context(), &model.Parent{
		KidID: mux.Vars(r)["kidId"],
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, parent)
}

// ListKidParents GET /api/kids/{kidId}/parents
func (h *ParentHandler) ListKidParents(w http.ResponseWriter, r *http.Request) {
	parents, err := h.svc.ListForKid(r.Context(), mux.Vars(r)["kidId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"parents": parents, "count": len(parents)})
}

// GetParent GET /api/parents/{parentId}
func (h *ParentHandler) GetParent(w http.ResponseWriter, r *http.Request) {
	parent, err := h.svc.Get(r.Context(), mux.Vars(r)["parentId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, parent)
}

// UpdateParent PATCH /api/parents/{parentId}
func (h *ParentHandler) UpdateParent(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	parent, err := h.svc.Update(r.Context(), mux.Vars(r)["parentId"], fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, parent)
}

// DeleteParent DELETE /api/parents/{parentId}
func (h *ParentHandler) DeleteParent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["parentId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
