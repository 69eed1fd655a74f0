package handlers

import (
	"encoding/json"
	"net/http"

	"board-backend/internal/models"
	"board-backend/internal/services"
	"board-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ThreadHandler struct {
	Service *services.ThreadService
}

func NewThreadHandler(s *services.ThreadService) *ThreadHandler {
	return &ThreadHandler{Service: s}
}

func (h *ThreadHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.CreateThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	thread, err := h.Service.Create(r.Context(), ac, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, thread.DTO())
}

func (h *ThreadHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	thread, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, thread.DTO())
}

func (h *ThreadHandler) ListThreads(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	threads, err := h.Service.List(r.Context(), limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	dtos := make([]models.ThreadDTO, 0, len(threads))
	for _, t := range threads {
		dtos = append(dtos, t.DTO())
	}
	utils.JSON(w, http.StatusOK, dtos)
}

func (h *ThreadHandler) UpdateThread(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.UpdateThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	thread, err := h.Service.Update(r.Context(), ac, mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, thread.DTO())
}

func (h *ThreadHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
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
