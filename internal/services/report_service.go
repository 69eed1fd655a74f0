package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"board-backend/internal/models"

	"github.com/jung-kurt/gofpdf/v2"
)

// ModerationSummaryData holds everything on one moderation activity report.
type ModerationSummaryData struct {
	From          time.Time
	To            time.Time
	Actions       []*models.ModerationAction
	Appeals       []*models.Appeal
	Reports       []*models.FlagReport
	ActionsByType map[models.ActionType]int
	AppealsByStat map[models.AppealStatus]int
	OpenReports   int
}

// reportPageSize bounds how many rows a summary pulls per table; windows
// larger than this get truncated rather than paged.
const reportPageSize = 1000

type ReportService struct {
	Actions ModerationActionRepo
	Appeals AppealRepo
	Reports FlagReportRepo
}

func NewReportService(actions ModerationActionRepo, appeals AppealRepo, reports FlagReportRepo) *ReportService {
	return &ReportService{Actions: actions, Appeals: appeals, Reports: reports}
}

// GetSummaryData collects moderation activity inside [from, to).
func (s *ReportService) GetSummaryData(ctx context.Context, from, to time.Time) (*ModerationSummaryData, error) {
	actions, err := s.Actions.List(ctx, reportPageSize, 0)
	if err != nil {
		return nil, err
	}
	appeals, err := s.Appeals.List(ctx, reportPageSize, 0)
	if err != nil {
		return nil, err
	}
	reports, err := s.Reports.List(ctx, "", reportPageSize, 0)
	if err != nil {
		return nil, err
	}

	data := &ModerationSummaryData{
		From:          from,
		To:            to,
		ActionsByType: make(map[models.ActionType]int),
		AppealsByStat: make(map[models.AppealStatus]int),
	}

	inWindow := func(t time.Time) bool {
		return !t.Before(from) && t.Before(to)
	}

	for _, a := range actions {
		if inWindow(a.CreatedAt) {
			data.Actions = append(data.Actions, a)
			data.ActionsByType[a.ActionType]++
		}
	}
	for _, a := range appeals {
		if inWindow(a.CreatedAt) {
			data.Appeals = append(data.Appeals, a)
			data.AppealsByStat[a.Status]++
		}
	}
	for _, r := range reports {
		if inWindow(r.CreatedAt) {
			data.Reports = append(data.Reports, r)
			if r.Status == models.ReportOpen {
				data.OpenReports++
			}
		}
	}

	return data, nil
}

// GenerateSummaryPDF renders a moderation activity report.
func (s *ReportService) GenerateSummaryPDF(data *ModerationSummaryData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Moderation Activity Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Window: %s to %s",
		data.From.Format("02-Jan-2006"), data.To.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("02-Jan-2006 15:04 UTC")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Actions: %d", len(data.Actions)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Appeals: %d", len(data.Appeals)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Reports: %d (%d open)", len(data.Reports), data.OpenReports), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Moderation Actions", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(45, 7, "Action ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Created", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "Reason", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, a := range data.Actions {
		reason := a.ActionReason
		if len(reason) > 34 {
			reason = reason[:31] + "..."
		}
		pdf.CellFormat(45, 6, shortID(a.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, string(a.ActionType), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, string(a.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, a.CreatedAt.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 6, reason, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Appeals", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(45, 7, "Appeal ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Action ID", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(65, 7, "Filed", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, a := range data.Appeals {
		pdf.CellFormat(45, 6, shortID(a.ID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 6, shortID(a.ModerationActionID), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, string(a.Status), "1", 0, "C", false, 0, "")
		pdf.CellFormat(65, 6, a.CreatedAt.Format("02-Jan-2006 15:04"), "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateSummaryCSV renders the same window as CSV rows.
func (s *ReportService) GenerateSummaryCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	data, err := s.GetSummaryData(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"Moderation Activity Report",
		data.From.Format("02-Jan-2006"), data.To.Format("02-Jan-2006")})
	w.Write([]string{""})
	w.Write([]string{"Actions", fmt.Sprintf("%d", len(data.Actions))})
	w.Write([]string{"Appeals", fmt.Sprintf("%d", len(data.Appeals))})
	w.Write([]string{"Reports", fmt.Sprintf("%d", len(data.Reports))})
	w.Write([]string{"Open Reports", fmt.Sprintf("%d", data.OpenReports)})
	w.Write([]string{""})

	w.Write([]string{"Kind", "ID", "Type/Status", "Created", "Detail"})
	for _, a := range data.Actions {
		w.Write([]string{"action", a.ID, string(a.ActionType), a.CreatedAt.Format(time.RFC3339), a.ActionReason})
	}
	for _, a := range data.Appeals {
		w.Write([]string{"appeal", a.ID, string(a.Status), a.CreatedAt.Format(time.RFC3339), a.AppealRationale})
	}
	for _, r := range data.Reports {
		w.Write([]string{"report", r.ID, string(r.Status), r.CreatedAt.Format(time.RFC3339), r.Reason})
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
