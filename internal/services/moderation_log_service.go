package services

import (
	"context"
	"errors"

	"board-backend/internal/apperr"
	"board-backend/internal/middleware"
	"board-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// ModerationLogRepo is the repository slice the log service consumes.
type ModerationLogRepo interface {
	Create(ctx context.Context, l *models.ModerationLog) (bool, error)
	Get(ctx context.Context, id string) (*models.ModerationLog, error)
	ListByAction(ctx context.Context, actionID string) ([]*models.ModerationLog, error)
	UpdateDetails(ctx context.Context, id string, details *string) (bool, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

type ModerationLogService struct {
	Logs ModerationLogRepo
}

func NewModerationLogService(logs ModerationLogRepo) *ModerationLogService {
	return &ModerationLogService{Logs: logs}
}

// Append writes a new audit entry. Fails with NotFound when the related
// action is missing or soft-deleted.
func (s *ModerationLogService) Append(ctx context.Context, actor *middleware.AuthContext, req *models.CreateModerationLogRequest) (*models.ModerationLog, error) {
	if !actor.Role.CanModerate() {
		return nil, apperr.Forbidden("moderator role required")
	}
	if req.RelatedActionID == "" {
		return nil, apperr.Validation("related_action_id is required")
	}
	if req.EventType == "" {
		return nil, apperr.Validation("event_type is required")
	}

	actorID := actor.MemberID
	entry := &models.ModerationLog{
		ActorMemberID:   &actorID,
		RelatedActionID: req.RelatedActionID,
		RelatedAppealID: req.RelatedAppealID,
		RelatedReportID: req.RelatedReportID,
		EventType:       req.EventType,
		EventDetails:    req.EventDetails,
	}
	ok, err := s.Logs.Create(ctx, entry)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("moderation action not found")
	}
	return entry, nil
}

func (s *ModerationLogService) Get(ctx context.Context, id string) (*models.ModerationLog, error) {
	entry, err := s.Logs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("moderation log entry not found")
		}
		return nil, err
	}
	return entry, nil
}

func (s *ModerationLogService) ListByAction(ctx context.Context, actionID string) ([]*models.ModerationLog, error) {
	return s.Logs.ListByAction(ctx, actionID)
}

// UpdateDetails permits narrative correction of event_details, the only
// mutable field on an audit entry.
func (s *ModerationLogService) UpdateDetails(ctx context.Context, actor *middleware.AuthContext, id string, req *models.UpdateModerationLogRequest) (*models.ModerationLog, error) {
	if !actor.Role.CanModerate() {
		return nil, apperr.Forbidden("moderator role required")
	}

	ok, err := s.Logs.UpdateDetails(ctx, id, req.EventDetails)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("moderation log entry not found")
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes for compliance retention; the row is never removed
// physically. A second delete reports NotFound.
func (s *ModerationLogService) Delete(ctx context.Context, actor *middleware.AuthContext, id string) error {
	if !actor.Role.CanModerate() {
		return apperr.Forbidden("moderator role required")
	}
	ok, err := s.Logs.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("moderation log entry not found")
	}
	return nil
}
