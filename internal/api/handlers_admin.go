package api

import (
	"encoding/json"
	"net/http"

	respond "github.com/bloomworks/bloom-practice/internal/api/respond"
	"github.com/bloomworks/bloom-practice/internal/api/validate"
	"github.com/bloomworks/bloom-practice/internal/services"
)

// AdminHandler covers admin registration and identity lookup.
type AdminHandler struct {
	svc *services.AdminService
}

func NewAdminHandler(svc *services.AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

// RegisterAdmin POST /api/admins
func (h *AdminHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
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
	admin, key, err := h.svc.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// The access key is disclosed exactly once, at registration.
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"adminId":   admin.AdminID,
		"name":      admin.Name,
		"email":     admin.Email,
		"accessKey": key,
	})
}

// WhoAmI GET /api/me
func (h *AdminHandler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	respond.WriteJSON(w, http.StatusOK, actor)
}
