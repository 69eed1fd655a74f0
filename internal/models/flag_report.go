package models

import "time"

// ReportStatus tracks a flag report through triage.
type ReportStatus string

const (
	ReportOpen      ReportStatus = "open"
	ReportTriaged   ReportStatus = "triaged"
	ReportDismissed ReportStatus = "dismissed"
	ReportActioned  ReportStatus = "actioned"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportOpen, ReportTriaged, ReportDismissed, ReportActioned:
		return true
	}
	return false
}

type FlagReport struct {
	ID               string       `json:"id"`
	ReporterMemberID string       `json:"reporter_member_id"`
	TargetType       TargetType   `json:"target_type"`
	TargetID         string       `json:"target_id"`
	Reason           string       `json:"reason"`
	Status           ReportStatus `json:"status"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	DeletedAt        *time.Time   `json:"-"`
}

type FlagReportDTO struct {
	ID               string       `json:"id"`
	ReporterMemberID string       `json:"reporter_member_id"`
	TargetType       TargetType   `json:"target_type"`
	TargetID         string       `json:"target_id"`
	Reason           string       `json:"reason"`
	Status           ReportStatus `json:"status"`
	CreatedAt        string       `json:"created_at"`
	UpdatedAt        string       `json:"updated_at"`
}

func (f *FlagReport) DTO() FlagReportDTO {
	return FlagReportDTO{
		ID:               f.ID,
		ReporterMemberID: f.ReporterMemberID,
		TargetType:       f.TargetType,
		TargetID:         f.TargetID,
		Reason:           f.Reason,
		Status:           f.Status,
		CreatedAt:        ISOTime(f.CreatedAt),
		UpdatedAt:        ISOTime(f.UpdatedAt),
	}
}

type CreateFlagReportRequest struct {
	TargetType TargetType `json:"target_type"`
	TargetID   string     `json:"target_id"`
	Reason     string     `json:"reason"`
}

type UpdateFlagReportStatusRequest struct {
	Status ReportStatus `json:"status"`
}
