package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/bloomworks/bloom-practice/internal/api/respond"
	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/services"
)

// GoalHandler covers per-kid goals and the shared goal library.
type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler { return &GoalHandler{svc: svc} }

// AddGoal POST /api/kids/{kidId}/goals
func (h *GoalHandler) AddGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string `json:"title"`
		CategoryID string `json:"categoryId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	goal, err := h.svc.AddGoalToKid(r.Context(), &model.Goal{
		KidID:      mux.Vars(r)["kidId"],
		Title:      req.Title,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, goal)
}

// ListKidGoals GET /api/kids/{kidId}/goals?active=true
func (h *GoalHandler) ListKidGoals(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	goals, err := h.svc.ListForKid(r.Context(), mux.Vars(r)["kidId"], activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"goals": goals, "count": len(goals)})
}

// GetGoal GET /api/goals/{goalId}
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.svc.Get(r.Context(), mux.Vars(r)["goalId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, goal)
}

// UpdateGoal PATCH /api/goals/{goalId}
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	goal, err := h.svc.Update(r.Context(), mux.Vars(r)["goalId"], fields)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, goal)
}

// DeactivateGoal POST /api/goals/{goalId}/deactivate
func (h *GoalHandler) DeactivateGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := h.svc.Deactivate(r.Context(), mux.Vars(r)["goalId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, goal)
}

// GetGoalLibrary GET /api/goal-library
func (h *GoalHandler) GetGoalLibrary(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Library(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items, "count": len(items)})
}
