package handlers

import (
	"fmt"
	"net/http"
	"time"

	"board-backend/internal/services"
	"board-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// window parses from/to query parameters, defaulting to the last 30 days.
func window(r *http.Request) (time.Time, time.Time, error) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date %q", v)
		}
		from = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date %q", v)
		}
		to = t.AddDate(0, 0, 1) // inclusive end date
	}
	return from, to, nil
}

func (h *ReportHandler) SummaryPDF(w http.ResponseWriter, r *http.Request) {
	from, to, err := window(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.Service.GetSummaryData(r.Context(), from, to)
	if err != nil {
		utils.Error(w, err)
		return
	}

	pdfBytes, err := h.Service.GenerateSummaryPDF(data)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="moderation_%s.pdf"`, from.Format("2006-01-02")))
	w.Write(pdfBytes)
}

func (h *ReportHandler) SummaryCSV(w http.ResponseWriter, r *http.Request) {
	from, to, err := window(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	csvBytes, err := h.Service.GenerateSummaryCSV(r.Context(), from, to)
	if err != nil {
		utils.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="moderation_%s.csv"`, from.Format("2006-01-02")))
	w.Write(csvBytes)
}
