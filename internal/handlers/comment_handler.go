package handlers

import (
	"encoding/json"
	"net/http"

	"board-backend/internal/models"
	"board-backend/internal/services"
	"board-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type CommentHandler struct {
	Service *services.CommentService
}

func NewCommentHandler(s *services.CommentService) *CommentHandler {
	return &CommentHandler{Service: s}
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.Service.Create(r.Context(), ac, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, comment.DTO())
}

func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	comment, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, comment.DTO())
}

func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	comments, err := h.Service.ListByPost(r.Context(), mux.Vars(r)["id"], limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	dtos := make([]models.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, c.DTO())
	}
	utils.JSON(w, http.StatusOK, dtos)
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	comment, err := h.Service.Update(r.Context(), ac, mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, comment.DTO())
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
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
