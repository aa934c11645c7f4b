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

// KidHandler is a thin HTTP transport over KidService.
type KidHandler struct {
	svc *services.KidService
}

func NewKidHandler(svc *services.KidService) *KidHandler { return &KidHandler{svc: svc} }

// CreateKid POST /api/kids
func (h *KidHandler) CreateKid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string                 `json:"name"`
		Age         int                    `json:"age"`
		Gender      string                 `json:"gender"`
		BoardConfig map[string]interface{} `json:"boardConfig"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.Name(req.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Age(req.Age); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	kid, err := h.svc.Create(r.Context(), &model.Kid{
		Name:        req.Name,
		Age:         req.Age,
		Gender:      req.Gender,
		BoardConfig: req.BoardConfig,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, kid)
}

// ListKids GET /api/kids — the caller's kids plus unassigned ones; ?all=true
// lists everything.
func (h *KidHandler) ListKids(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var kids []*model.Kid
	var err error
	if r.URL.Query().Get("all") == "true" {
		kids, err = h.svc.List(r.Context())
	} else {
		kids, err = h.svc.ListVisible(r.Context(), actor.AdminID)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"kids": kids, "count": len(kids)})
}

// GetKid GET /api/kids/{kidId}
func (h *KidHandler) GetKid(w http.ResponseWriter, r *http.Request) {
	kid, err := h.svc.Get(r.Context(), mux.Vars(r)["kidId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, kid)
}

// UpdateKid PATCH /api/kids/{kidId}
func (h *KidHandler) UpdateKid(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	kid, err := h.svc.Update(r.Context(), mux.Vars(r)["kidId"], fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, kid)
}

// AttachKid POST /api/kids/{kidId}/attach — assigns the kid to the caller.
func (h *KidHandler) AttachKid(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	kid, err := h.svc.Attach(r.Context(), mux.Vars(r)["kidId"], actor.AdminID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, kid)
}

// DetachKid POST /api/kids/{kidId}/detach — releases the caller's kid.
func (h *KidHandler) DetachKid(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	kid, err := h.svc.Detach(r.Context(), mux.Vars(r)["kidId"], actor.AdminID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, kid)
}

// DeleteKid DELETE /api/kids/{kidId}
func (h *KidHandler) DeleteKid(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["kidId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
