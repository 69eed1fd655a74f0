package handlers

import (
	"encoding/json"
	"net/http"

	"board-backend/internal/models"
	"board-backend/internal/services"
	"board-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type AppealHandler struct {
	Service *services.AppealService
}

func NewAppealHandler(s *services.AppealService) *AppealHandler {
	return &AppealHandler{Service: s}
}

func (h *AppealHandler) CreateAppeal(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.CreateAppealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appeal, err := h.Service.CreateAppeal(r.Context(), ac, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, appeal.DTO())
}

func (h *AppealHandler) GetAppeal(w http.ResponseWriter, r *http.Request) {
	appeal, err := h.Service.GetAppeal(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, appeal.DTO())
}

func (h *AppealHandler) ListAppeals(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	appeals, err := h.Service.ListAppeals(r.Context(), limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	dtos := make([]models.AppealDTO, 0, len(appeals))
	for _, a := range appeals {
		dtos = append(dtos, a.DTO())
	}
	utils.JSON(w, http.StatusOK, dtos)
}

// AmendRationale lets the appellant revise their argument while the
// appeal is open.
func (h *AppealHandler) AmendRationale(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.UpdateAppealRationaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appeal, err := h.Service.AmendRationale(r.Context(), ac, mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, appeal.DTO())
}

// Transition advances the appeal state machine; moderator only.
func (h *AppealHandler) Transition(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.TransitionAppealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	appeal, err := h.Service.Transition(r.Context(), ac, mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, appeal.DTO())
}

func (h *AppealHandler) DeleteAppeal(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteAppeal(r.Context(), ac, mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
