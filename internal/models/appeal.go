package models

import "time"

// AppealStatus is the appeal lifecycle state. pending is initial,
// under_review is intermediate, accepted/denied/closed are terminal.
type AppealStatus string

const (
	AppealPending     AppealStatus = "pending"
	AppealUnderReview AppealStatus = "under_review"
	AppealAccepted    AppealStatus = "accepted"
	AppealDenied      AppealStatus = "denied"
	AppealClosed      AppealStatus = "closed"
)

func (s AppealStatus) Valid() bool {
	switch s {
	case AppealPending, AppealUnderReview, AppealAccepted, AppealDenied, AppealClosed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted.
func (s AppealStatus) Terminal() bool {
	switch s {
	case AppealAccepted, AppealDenied, AppealClosed:
		return true
	}
	return false
}

// CanTransitionTo reports whether s -> to is a legal transition.
func (s AppealStatus) CanTransitionTo(to AppealStatus) bool {
	if s.Terminal() || !to.Valid() {
		return false
	}
	switch s {
	case AppealPending:
		return to == AppealUnderReview || to.Terminal()
	case AppealUnderReview:
		return to.Terminal()
	}
	return false
}

type Appeal struct {
	ID                 string       `json:"id"`
	ModerationActionID string       `json:"moderation_action_id"`
	AppellantMemberID  string       `json:"appellant_member_id"`
	AppealRationale    string       `json:"appeal_rationale"`
	Status             AppealStatus `json:"status"`
	ResolutionNotes    *string      `json:"resolution_notes"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
	DeletedAt          *time.Time   `json:"-"`
}

type AppealDTO struct {
	ID                 string       `json:"id"`
	ModerationActionID string       `json:"moderation_action_id"`
	AppellantMemberID  string       `json:"appellant_member_id"`
	AppealRationale    string       `json:"appeal_rationale"`
	Status             AppealStatus `json:"status"`
	ResolutionNotes    *string      `json:"resolution_notes"`
	CreatedAt          string       `json:"created_at"`
	UpdatedAt          string       `json:"updated_at"`
}

func (a *Appeal) DTO() AppealDTO {
	return AppealDTO{
		ID:                 a.ID,
		ModerationActionID: a.ModerationActionID,
		AppellantMemberID:  a.AppellantMemberID,
		AppealRationale:    a.AppealRationale,
		Status:             a.Status,
		ResolutionNotes:    a.ResolutionNotes,
		CreatedAt:          ISOTime(a.CreatedAt),
		UpdatedAt:          ISOTime(a.UpdatedAt),
	}
}

// CreateAppealRequest represents the request body for filing an appeal
type CreateAppealRequest struct {
	ModerationActionID string `json:"moderation_action_id"`
	AppealRationale    string `json:"appeal_rationale"`
}

// UpdateAppealRationaleRequest is the appellant's amendment body
type UpdateAppealRationaleRequest struct {
	AppealRationale string `json:"appeal_rationale"`
}

// TransitionAppealRequest is the moderator/admin status-change body
type TransitionAppealRequest struct {
	Status          AppealStatus `json:"status"`
	ResolutionNotes *string      `json:"resolution_notes"`
}
