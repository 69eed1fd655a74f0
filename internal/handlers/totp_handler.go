package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"board-backend/internal/auth"
	"board-backend/internal/models"
	"board-backend/internal/services"
	"board-backend/pkg/utils"
)

type TOTPHandler struct {
	TOTP    *services.TOTPService
	Members *services.MemberService
	JWT     *auth.JWTManager
}

func NewTOTPHandler(totp *services.TOTPService, members *services.MemberService, jwt *auth.JWTManager) *TOTPHandler {
	return &TOTPHandler{TOTP: totp, Members: members, JWT: jwt}
}

// Setup provisions a fresh secret and QR code for the authenticated member.
func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	member, err := h.Members.Get(r.Context(), ac.MemberID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	resp, err := h.TOTP.GenerateSetup(r.Context(), member)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Enable confirms the first authenticator code and switches 2FA on.
func (h *TOTPHandler) Enable(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.TOTPCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.TOTP.VerifyAndEnable(r.Context(), ac.MemberID, req.Code); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": true})
}

// CompleteLogin is login step 2: temp token in the Authorization header,
// authenticator code in the body.
func (h *TOTPHandler) CompleteLogin(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
		return
	}

	claims, err := h.JWT.ValidateTempToken(parts[1])
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	var req models.TOTPCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.TOTP.CompleteLogin(r.Context(), claims.MemberID, req.Code)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.TOTPDisableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.TOTP.Disable(r.Context(), ac.MemberID, &req); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"enabled": false})
}

func (h *TOTPHandler) Status(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	status, err := h.TOTP.Status(r.Context(), ac.MemberID)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, status)
}
