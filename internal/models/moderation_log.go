package models

import "time"

// ModerationLog is an append-only audit entry tied to a moderation action.
// After creation only event_details may change; soft-delete retains the row.
type ModerationLog struct {
	ID              string     `json:"id"`
	ActorMemberID   *string    `json:"actor_member_id"` // nil for system-generated
	RelatedActionID string     `json:"related_action_id"`
	RelatedAppealID *string    `json:"related_appeal_id"`
	RelatedReportID *string    `json:"related_report_id"`
	EventType       string     `json:"event_type"`
	EventDetails    *string    `json:"event_details"`
	CreatedAt       time.Time  `json:"created_at"`
	DeletedAt       *time.Time `json:"-"`
}

type ModerationLogDTO struct {
	ID              string  `json:"id"`
	ActorMemberID   *string `json:"actor_member_id"`
	RelatedActionID string  `json:"related_action_id"`
	RelatedAppealID *string `json:"related_appeal_id"`
	RelatedReportID *string `json:"related_report_id"`
	EventType       string  `json:"event_type"`
	EventDetails    *string `json:"event_details"`
	CreatedAt       string  `json:"created_at"`
}

func (l *ModerationLog) DTO() ModerationLogDTO {
	return ModerationLogDTO{
		ID:              l.ID,
		ActorMemberID:   l.ActorMemberID,
		RelatedActionID: l.RelatedActionID,
		RelatedAppealID: l.RelatedAppealID,
		RelatedReportID: l.RelatedReportID,
		EventType:       l.EventType,
		EventDetails:    l.EventDetails,
		CreatedAt:       ISOTime(l.CreatedAt),
	}
}

// CreateModerationLogRequest represents the request body for appending a log entry
type CreateModerationLogRequest struct {
	RelatedActionID string  `json:"related_action_id"`
	RelatedAppealID *string `json:"related_appeal_id"`
	RelatedReportID *string `json:"related_report_id"`
	EventType       string  `json:"event_type"`
	EventDetails    *string `json:"event_details"`
}

// UpdateModerationLogRequest carries the only permitted post-creation mutation
type UpdateModerationLogRequest struct {
	EventDetails *string `json:"event_details"`
}
