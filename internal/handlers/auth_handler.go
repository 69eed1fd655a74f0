package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"board-backend/internal/models"
	"board-backend/internal/services"
	"board-backend/pkg/utils"
)

type AuthHandler struct {
	Members *services.MemberService
	TOTP    *services.TOTPService
}

func NewAuthHandler(members *services.MemberService, totp *services.TOTPService) *AuthHandler {
	return &AuthHandler{Members: members, TOTP: totp}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Members.Signup(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.Members.Login(r.Context(), &req)
	if errors.Is(err, services.ErrTOTPRequired) {
		// A code supplied up front completes both steps in one call.
		if req.TOTPCode != "" {
			full, err := h.TOTP.CompleteLogin(r.Context(), resp.Member.ID, req.TOTPCode)
			if err != nil {
				utils.Error(w, err)
				return
			}
			utils.JSON(w, http.StatusOK, full)
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{
			"totp_required": true,
			"temp_token":    resp.Token,
		})
		return
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Me returns the authenticated member's own account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	member, err := h.Members.Get(r.Context(), ac.MemberID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, member.DTO())
}
