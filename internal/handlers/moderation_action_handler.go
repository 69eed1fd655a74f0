package handlers

import (
	"encoding/json"
	"net/http"

	"board-backend/internal/models"
	"board-backend/internal/services"
	"board-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ModerationActionHandler struct {
	Service *services.ModerationService
}

func NewModerationActionHandler(s *services.ModerationService) *ModerationActionHandler {
	return &ModerationActionHandler{Service: s}
}

func (h *ModerationActionHandler) CreateAction(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.CreateModerationActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	action, err := h.Service.CreateAction(r.Context(), ac, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, action.DTO())
}

func (h *ModerationActionHandler) GetAction(w http.ResponseWriter, r *http.Request) {
	action, err := h.Service.GetAction(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, action.DTO())
}

func (h *ModerationActionHandler) ListActions(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	actions, err := h.Service.ListActions(r.Context(), limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	dtos := make([]models.ModerationActionDTO, 0, len(actions))
	for _, a := range actions {
		dtos = append(dtos, a.DTO())
	}
	utils.JSON(w, http.StatusOK, dtos)
}

func (h *ModerationActionHandler) UpdateAction(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.UpdateModerationActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	action, err := h.Service.UpdateAction(r.Context(), ac, mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, action.DTO())
}

func (h *ModerationActionHandler) DeleteAction(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteAction(r.Context(), ac, mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
