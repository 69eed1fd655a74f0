package services

import (
	"context"
	"errors"
	"log"

	"board-backend/internal/apperr"
	"board-backend/internal/metrics"
	"board-backend/internal/middleware"
	"board-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// ModerationActionRepo is the repository slice the moderation service consumes.
type ModerationActionRepo interface {
	Create(ctx context.Context, a *models.ModerationAction) error
	Get(ctx context.Context, id string) (*models.ModerationAction, error)
	List(ctx context.Context, limit, offset int) ([]*models.ModerationAction, error)
	Update(ctx context.Context, a *models.ModerationAction) (bool, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

// ModerationLogAppender appends audit entries; used for the best-effort
// creation log (transition logs are written transactionally by the appeal
// repository instead).
type ModerationLogAppender interface {
	Create(ctx context.Context, l *models.ModerationLog) (bool, error)
}

// TargetChecker verifies that an action target exists and is not
// soft-deleted at creation time.
type TargetChecker interface {
	TargetExists(ctx context.Context, targetType models.TargetType, id string) (bool, error)
}

// Notifier records and pushes a notification; failures are logged, never
// propagated into the moderation write path.
type Notifier interface {
	Notify(ctx context.Context, memberID, kind, subject string, body *string)
}

type ModerationService struct {
	Actions ModerationActionRepo
	Logs    ModerationLogAppender
	Targets TargetChecker
	Notify  Notifier
}

func NewModerationService(actions ModerationActionRepo, logs ModerationLogAppender, targets TargetChecker, notify Notifier) *ModerationService {
	return &ModerationService{Actions: actions, Logs: logs, Targets: targets, Notify: notify}
}

// CreateAction records an intervention. The target reference, when
// present, must point at a live entity.
func (s *ModerationService) CreateAction(ctx context.Context, actor *middleware.AuthContext, req *models.CreateModerationActionRequest) (*models.ModerationAction, error) {
	if !actor.Role.CanModerate() {
		return nil, apperr.Forbidden("moderator role required")
	}
	if !req.ActionType.Valid() {
		return nil, apperr.Validation("unknown action_type %q", req.ActionType)
	}
	if req.ActionReason == "" {
		return nil, apperr.Validation("action_reason is required")
	}

	// Target is optional, but a present reference must be complete and live.
	if (req.TargetType == nil) != (req.TargetID == nil) {
		return nil, apperr.Validation("target_type and target_id must be supplied together")
	}
	if req.TargetType != nil {
		if !req.TargetType.Valid() {
			return nil, apperr.Validation("unknown target_type %q", *req.TargetType)
		}
		exists, err := s.Targets.TargetExists(ctx, *req.TargetType, *req.TargetID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperr.Validation("target %s does not exist", *req.TargetType)
		}
	}

	action := &models.ModerationAction{
		ModeratorID:    actor.MemberID,
		TargetType:     req.TargetType,
		TargetID:       req.TargetID,
		ActionType:     req.ActionType,
		ActionReason:   req.ActionReason,
		Details:        req.Details,
		EffectiveFrom:  req.EffectiveFrom,
		EffectiveUntil: req.EffectiveUntil,
		Status:         models.ActionStatusActive,
	}
	if err := s.Actions.Create(ctx, action); err != nil {
		return nil, err
	}

	metrics.ModerationActionsTotal.WithLabelValues(string(action.ActionType)).Inc()

	// Audit entry and target notification ride outside the row write;
	// a failure here must not unwind the action.
	actorID := actor.MemberID
	if ok, err := s.Logs.Create(ctx, &models.ModerationLog{
		ActorMemberID:   &actorID,
		RelatedActionID: action.ID,
		EventType:       "action_created",
		EventDetails:    &action.ActionReason,
	}); err != nil || !ok {
		log.Printf("[Moderation] audit append failed for action %s: %v", action.ID, err)
	}

	if s.Notify != nil && action.TargetType != nil && *action.TargetType == models.TargetMember {
		s.Notify.Notify(ctx, *action.TargetID, "moderation_action",
			"A moderation action was taken on your account", &action.ActionReason)
	}

	return action, nil
}

func (s *ModerationService) GetAction(ctx context.Context, id string) (*models.ModerationAction, error) {
	action, err := s.Actions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("moderation action not found")
		}
		return nil, err
	}
	return action, nil
}

func (s *ModerationService) ListActions(ctx context.Context, limit, offset int) ([]*models.ModerationAction, error) {
	return s.Actions.List(ctx, limit, offset)
}

// UpdateAction mutates the permitted fields. Only the creating moderator
// or an administrator may call.
func (s *ModerationService) UpdateAction(ctx context.Context, actor *middleware.AuthContext, id string, req *models.UpdateModerationActionRequest) (*models.ModerationAction, error) {
	action, err := s.GetAction(ctx, id)
	if err != nil {
		return nil, err
	}

	if action.ModeratorID != actor.MemberID && actor.Role != models.RoleAdmin {
		return nil, apperr.Forbidden("only the creating moderator or an administrator may update this action")
	}

	if req.ActionType != nil {
		if !req.ActionType.Valid() {
			return nil, apperr.Validation("unknown action_type %q", *req.ActionType)
		}
		action.ActionType = *req.ActionType
	}
	if req.ActionReason != nil {
		if *req.ActionReason == "" {
			return nil, apperr.Validation("action_reason must not be empty")
		}
		action.ActionReason = *req.ActionReason
	}
	if req.Details != nil {
		action.Details = req.Details
	}
	if req.EffectiveFrom != nil {
		action.EffectiveFrom = req.EffectiveFrom
	}
	if req.EffectiveUntil != nil {
		action.EffectiveUntil = req.EffectiveUntil
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperr.Validation("unknown status %q", *req.Status)
		}
		action.Status = *req.Status
	}

	ok, err := s.Actions.Update(ctx, action)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("moderation action not found")
	}
	return action, nil
}

// DeleteAction soft-deletes. Deleting an already-deleted action reports
// NotFound rather than succeeding silently.
func (s *ModerationService) DeleteAction(ctx context.Context, actor *middleware.AuthContext, id string) error {
	action, err := s.Actions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("moderation action not found")
		}
		return err
	}
	if action.ModeratorID != actor.MemberID && actor.Role != models.RoleAdmin {
		return apperr.Forbidden("only the creating moderator or an administrator may delete this action")
	}

	ok, err := s.Actions.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("moderation action not found")
	}
	return nil
}
