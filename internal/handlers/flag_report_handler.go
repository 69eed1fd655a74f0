package handlers

import (
	"encoding/json"
	"net/http"

	"board-backend/internal/models"
	"board-backend/internal/services"
	"board-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type FlagReportHandler struct {
	Service *services.FlagReportService
}

func NewFlagReportHandler(s *services.FlagReportService) *FlagReportHandler {
	return &FlagReportHandler{Service: s}
}

func (h *FlagReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.CreateFlagReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.Service.Create(r.Context(), ac, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, report.DTO())
}

func (h *FlagReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	report, err := h.Service.Get(r.Context(), ac, mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, report.DTO())
}

// ListReports supports ?status= filtering for the triage queue.
func (h *FlagReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	limit, offset := pagination(r)
	status := models.ReportStatus(r.URL.Query().Get("status"))
	reports, err := h.Service.List(r.Context(), ac, status, limit, offset)
	if err != nil {
		utils.Error(w, err)
		return
	}

	dtos := make([]models.FlagReportDTO, 0, len(reports))
	for _, f := range reports {
		dtos = append(dtos, f.DTO())
	}
	utils.JSON(w, http.StatusOK, dtos)
}

func (h *FlagReportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ac, ok := mustAuth(w, r)
	if !ok {
		return
	}

	var req models.UpdateFlagReportStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	report, err := h.Service.UpdateStatus(r.Context(), ac, mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, report.DTO())
}

func (h *FlagReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
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
