package handlers

import (
	"encoding/json"
	"net/http"

	"board-backend/internal/models"
	"board-backend/internal/services"
	"board-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type PostHandler struct {
	Service *services.PostService
}

func NewPostHandler(s *services.PostService) *PostHandler {
	return &PostHandler{Service: s}
}

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.Service.Create(r.Context(), ac, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, post.DTO())
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, post.DTO())
}

// ListByThread serves the posts of a thread, oldest first.
func (h *PostHandler) ListByThread(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	posts, err := h.Service.ListByThread(r.Context(), mux.Vars(r)["id"], limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	dtos := make([]models.PostDTO, 0, len(posts))
	for _, p := range posts {
		dtos = append(dtos, p.DTO())
	}
	utils.JSON(w, http.StatusOK, dtos)
}

func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	post, err := h.Service.Update(r.Context(), ac, mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, post.DTO())
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
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
