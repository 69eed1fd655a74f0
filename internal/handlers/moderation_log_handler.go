package handlers

import (
	"encoding/json"
	"net/http"

	"board-backend/internal/models"
	"board-backend/internal/services"
	"board-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ModerationLogHandler struct {
	Service *services.ModerationLogService
}

func NewModerationLogHandler(s *services.ModerationLogService) *ModerationLogHandler {
	return &ModerationLogHandler{Service: s}
}

func (h *ModerationLogHandler) AppendEntry(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.CreateModerationLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.Service.Append(r.Context(), ac, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, entry.DTO())
}

func (h *ModerationLogHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry.DTO())
}

// ListByAction returns the audit trail of one moderation action in
// creation order.
func (h *ModerationLogHandler) ListByAction(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListByAction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	dtos := make([]models.ModerationLogDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, e.DTO())
	}
	utils.JSON(w, http.StatusOK, dtos)
}

func (h *ModerationLogHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.UpdateModerationLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.Service.UpdateDetails(r.Context(), ac, mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry.DTO())
}

func (h *ModerationLogHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), ac, mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
