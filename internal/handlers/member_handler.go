package handlers

import (
	"encoding/json"
	"net/http"

	"board-backend/internal/models"
	"board-backend/internal/services"
	"board-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// MemberHandler serves the administrator account-management surface.
type MemberHandler struct {
	Service *services.MemberService
}

func NewMemberHandler(s *services.MemberService) *MemberHandler {
	return &MemberHandler{Service: s}
}

func (h *MemberHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	member, err := h.Service.CreateMember(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, member.DTO())
}

func (h *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, member.DTO())
}

func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	dtos := make([]models.MemberDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, m.DTO())
	}
	utils.JSON(w, http.StatusOK, dtos)
}

func (h *MemberHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	member, err := h.Service.UpdateMember(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, member.DTO())
}

// Suspend flips is_active off; the member's next request is rejected by
// the auth middleware.
func (h *MemberHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.SetActiveStatus(r.Context(), mux.Vars(r)["id"], false); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"is_active": false})
}

func (h *MemberHandler) Reinstate(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.SetActiveStatus(r.Context(), mux.Vars(r)["id"], true); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"is_active": true})
}

func (h *MemberHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
