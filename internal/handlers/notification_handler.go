package handlers

import (
	"net/http"

	"board-backend/internal/models"
	"board-backend/internal/notify"
	"board-backend/internal/services"
	"board-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Service *services.NotificationService
	Hub     *notify.Hub
}

func NewNotificationHandler(s *services.NotificationService, hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{Service: s, Hub: hub}
}

// ListNotifications supports ?unread=true for the badge count query.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := h.Service.List(r.Context(), ac, unreadOnly, limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	dtos := make([]models.NotificationDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, n.DTO())
	}
	utils.JSON(w, http.StatusOK, dtos)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	if err := h.Service.MarkRead(r.Context(), ac, mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]bool{"read": true})
}

func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
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

// Stream upgrades to a websocket carrying the member's live notifications.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}
	h.Hub.ServeWS(w, r, ac.MemberID)
}
