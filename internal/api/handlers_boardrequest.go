package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/bloomworks/bloom-practice/internal/api/respond"
	"github.com/bloomworks/bloom-practice/internal/model"
	"github.com/bloomworks/bloom-practice/internal/services"
)

// BoardRequestHandler covers board configuration change requests.
type BoardRequestHandler struct {
	svc *services.BoardRequestService
}

func NewBoardRequestHandler(svc *services.BoardRequestService) *BoardRequestHandler {
	return &BoardRequestHandler{svc: svc}
}

// CreateBoardRequest POST /api/kids/{kidId}/board-requests
func (h *BoardRequestHandler) CreateBoardRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
		RequestedBy string `json:"requestedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	created, err := h.svc.Create(r.Context(), &model.BoardRequest{
		KidID:       mux.Vars(r)["kidId"],
		Description: req.Description,
		RequestedBy: req.RequestedBy,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, created)
}

// ListKidBoardRequests GET /api/kids/{kidId}/board-requests
func (h *BoardRequestHandler) ListKidBoardRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.svc.ListForKid(r.Context(), mux.Vars(r)["kidId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"boardRequests": requests, "count": len(requests)})
}

// UpdateBoardRequest PATCH /api/board-requests/{requestId} — status only.
func (h *BoardRequestHandler) UpdateBoardRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	updated, err := h.svc.UpdateStatus(r.Context(), mux.Vars(r)["requestId"], req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, updated)
}

// DeleteBoardRequest DELETE /api/board-requests/{requestId}
func (h *BoardRequestHandler) DeleteBoardRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), mux.Vars(r)["requestId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
