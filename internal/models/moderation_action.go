package models

import "time"

// ActionType enumerates the kinds of moderator intervention.
type ActionType string

const (
	ActionWarn     ActionType = "warn"
	ActionMute     ActionType = "mute"
	ActionRemove   ActionType = "remove"
	ActionEdit     ActionType = "edit"
	ActionRestrict ActionType = "restrict"
	ActionRestore  ActionType = "restore"
	ActionEscalate ActionType = "escalate"
)

func (t ActionType) Valid() bool {
	switch t {
	case ActionWarn, ActionMute, ActionRemove, ActionEdit, ActionRestrict, ActionRestore, ActionEscalate:
		return true
	}
	return false
}

// ActionStatus is the workflow-significant state of a moderation action.
type ActionStatus string

const (
	ActionStatusActive   ActionStatus = "active"
	ActionStatusReversed ActionStatus = "reversed"
	ActionStatusAppealed ActionStatus = "appealed"
)

func (s ActionStatus) Valid() bool {
	switch s {
	case ActionStatusActive, ActionStatusReversed, ActionStatusAppealed:
		return true
	}
	return false
}

// TargetType identifies what a moderation action or flag report points at.
type TargetType string

const (
	TargetMember  TargetType = "member"
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

func (t TargetType) Valid() bool {
	switch t {
	case TargetMember, TargetPost, TargetComment:
		return true
	}
	return false
}

type ModerationAction struct {
	ID             string       `json:"id"`
	ModeratorID    string       `json:"moderator_id"`
	TargetType     *TargetType  `json:"target_type"`
	TargetID       *string      `json:"target_id"`
	ActionType     ActionType   `json:"action_type"`
	ActionReason   string       `json:"action_reason"`
	Details        *string      `json:"details"`
	EffectiveFrom  *time.Time   `json:"effective_from"`
	EffectiveUntil *time.Time   `json:"effective_until"`
	Status         ActionStatus `json:"status"`
	AppealID       *string      `json:"appeal_id"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
	DeletedAt      *time.Time   `json:"-"`
}

type ModerationActionDTO struct {
	ID             string       `json:"id"`
	ModeratorID    string       `json:"moderator_id"`
	TargetType     *TargetType  `json:"target_type"`
	TargetID       *string      `json:"target_id"`
	ActionType     ActionType   `json:"action_type"`
	ActionReason   string       `json:"action_reason"`
	Details        *string      `json:"details"`
	EffectiveFrom  *string      `json:"effective_from"`
	EffectiveUntil *string      `json:"effective_until"`
	Status         ActionStatus `json:"status"`
	AppealID       *string      `json:"appeal_id"`
	CreatedAt      string       `json:"created_at"`
	UpdatedAt      string       `json:"updated_at"`
}

func (a *ModerationAction) DTO() ModerationActionDTO {
	return ModerationActionDTO{
		ID:             a.ID,
		ModeratorID:    a.ModeratorID,
		TargetType:     a.TargetType,
		TargetID:       a.TargetID,
		ActionType:     a.ActionType,
		ActionReason:   a.ActionReason,
		Details:        a.Details,
		EffectiveFrom:  ISOTimePtr(a.EffectiveFrom),
		EffectiveUntil: ISOTimePtr(a.EffectiveUntil),
		Status:         a.Status,
		AppealID:       a.AppealID,
		CreatedAt:      ISOTime(a.CreatedAt),
		UpdatedAt:      ISOTime(a.UpdatedAt),
	}
}

// CreateModerationActionRequest represents the request body for creating an action
type CreateModerationActionRequest struct {
	TargetType     *TargetType `json:"target_type"`
	TargetID       *string     `json:"target_id"`
	ActionType     ActionType  `json:"action_type"`
	ActionReason   string      `json:"action_reason"`
	Details        *string     `json:"details"`
	EffectiveFrom  *time.Time  `json:"effective_from"`
	EffectiveUntil *time.Time  `json:"effective_until"`
}

// UpdateModerationActionRequest carries the mutable fields. Nil means
// "leave unchanged".
type UpdateModerationActionRequest struct {
	ActionType     *ActionType   `json:"action_type"`
	ActionReason   *string       `json:"action_reason"`
	Details        *string       `json:"details"`
	EffectiveFrom  *time.Time    `json:"effective_from"`
	EffectiveUntil *time.Time    `json:"effective_until"`
	Status         *ActionStatus `json:"status"`
}
