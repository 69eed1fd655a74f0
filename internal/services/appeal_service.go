package services

import (
	"context"
	"errors"
	"fmt"

	"board-backend/internal/apperr"
	"board-backend/internal/metrics"
	"board-backend/internal/middleware"
	"board-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

// AppealRepo is the repository slice the appeal service consumes. The
// Transition method must be atomic: conditional status update plus audit
// log append in one transaction.
type AppealRepo interface {
	Create(ctx context.Context, a *models.Appeal) error
	Get(ctx context.Context, id string) (*models.Appeal, error)
	GetLiveByActionID(ctx context.Context, actionID string) (*models.Appeal, error)
	List(ctx context.Context, limit, offset int) ([]*models.Appeal, error)
	UpdateRationale(ctx context.Context, id, rationale string) (bool, error)
	Transition(ctx context.Context, id string, from, to models.AppealStatus, resolutionNotes *string, logEntry *models.ModerationLog) (bool, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

// ActionGetter fetches the contested moderation action.
type ActionGetter interface {
	Get(ctx context.Context, id string) (*models.ModerationAction, error)
}

type AppealService struct {
	Appeals AppealRepo
	Actions ActionGetter
	Notify  Notifier
}

func NewAppealService(appeals AppealRepo, actions ActionGetter, notify Notifier) *AppealService {
	return &AppealService{Appeals: appeals, Actions: actions, Notify: notify}
}

// CreateAppeal files a contest against a moderation action. Only the
// member targeted by the action may file, and each action carries at most
// one live appeal.
func (s *AppealService) CreateAppeal(ctx context.Context, actor *middleware.AuthContext, req *models.CreateAppealRequest) (*models.Appeal, error) {
	if req.ModerationActionID == "" {
		return nil, apperr.Validation("moderation_action_id is required")
	}
	if req.AppealRationale == "" {
		return nil, apperr.Validation("appeal_rationale is required")
	}

	action, err := s.Actions.Get(ctx, req.ModerationActionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("moderation action not found")
		}
		return nil, err
	}

	if action.TargetType == nil || *action.TargetType != models.TargetMember ||
		action.TargetID == nil || *action.TargetID != actor.MemberID {
		return nil, apperr.Forbidden("only the member targeted by the action may appeal it")
	}

	if existing, err := s.Appeals.GetLiveByActionID(ctx, action.ID); err == nil && existing != nil {
		return nil, apperr.Conflict("this action already has an appeal")
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	appeal := &models.Appeal{
		ModerationActionID: action.ID,
		AppellantMemberID:  actor.MemberID,
		AppealRationale:    req.AppealRationale,
	}
	if err := s.Appeals.Create(ctx, appeal); err != nil {
		return nil, err
	}

	if s.Notify != nil {
		s.Notify.Notify(ctx, action.ModeratorID, "appeal_filed",
			"An appeal was filed against your moderation action", &appeal.AppealRationale)
	}

	return appeal, nil
}

func (s *AppealService) GetAppeal(ctx context.Context, id string) (*models.Appeal, error) {
	appeal, err := s.Appeals.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("appeal not found")
		}
		return nil, err
	}
	return appeal, nil
}

func (s *AppealService) ListAppeals(ctx context.Context, limit, offset int) ([]*models.Appeal, error) {
	return s.Appeals.List(ctx, limit, offset)
}

// AmendRationale lets the appellant revise their rationale while the
// appeal is still open.
func (s *AppealService) AmendRationale(ctx context.Context, actor *middleware.AuthContext, id string, req *models.UpdateAppealRationaleRequest) (*models.Appeal, error) {
	if req.AppealRationale == "" {
		return nil, apperr.Validation("appeal_rationale is required")
	}

	appeal, err := s.GetAppeal(ctx, id)
	if err != nil {
		return nil, err
	}
	if appeal.AppellantMemberID != actor.MemberID {
		return nil, apperr.Forbidden("only the appellant may amend the rationale")
	}
	if appeal.Status.Terminal() {
		return nil, apperr.Conflict("appeal already finalized")
	}

	// The status predicate in the UPDATE re-checks non-terminality, so a
	// transition racing this amendment makes it lose cleanly.
	ok, err := s.Appeals.UpdateRationale(ctx, id, req.AppealRationale)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Conflict("appeal already finalized")
	}

	appeal.AppealRationale = req.AppealRationale
	return appeal, nil
}

// Transition moves an appeal along pending -> under_review -> terminal.
// The status update and its audit log entry commit atomically; of two
// racing transitions exactly one succeeds and the loser gets Conflict.
func (s *AppealService) Transition(ctx context.Context, actor *middleware.AuthContext, id string, req *models.TransitionAppealRequest) (*models.Appeal, error) {
	if !actor.Role.CanModerate() {
		return nil, apperr.Forbidden("moderator role required")
	}
	if !req.Status.Valid() {
		return nil, apperr.Validation("unknown status %q", req.Status)
	}

	appeal, err := s.GetAppeal(ctx, id)
	if err != nil {
		return nil, err
	}

	if appeal.Status.Terminal() {
		return nil, apperr.Conflict("appeal already finalized")
	}
	if !appeal.Status.CanTransitionTo(req.Status) {
		return nil, apperr.Conflict("cannot transition appeal from %s to %s", appeal.Status, req.Status)
	}

	// A verdict needs its reasoning on record; administrative closure does not.
	if (req.Status == models.AppealAccepted || req.Status == models.AppealDenied) &&
		(req.ResolutionNotes == nil || *req.ResolutionNotes == "") {
		return nil, apperr.Validation("resolution_notes are required for %s", req.Status)
	}

	actorID := actor.MemberID
	details := fmt.Sprintf("status %s -> %s", appeal.Status, req.Status)
	logEntry := &models.ModerationLog{
		ActorMemberID:   &actorID,
		RelatedActionID: appeal.ModerationActionID,
		RelatedAppealID: &appeal.ID,
		EventType:       "appeal_" + string(req.Status),
		EventDetails:    &details,
	}

	ok, err := s.Appeals.Transition(ctx, id, appeal.Status, req.Status, req.ResolutionNotes, logEntry)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.AppealTransitionsTotal.WithLabelValues(string(req.Status), "conflict").Inc()
		// Zero rows means the row moved or vanished under us; tell them apart.
		if _, err := s.Appeals.Get(ctx, id); errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("appeal not found")
		}
		return nil, apperr.Conflict("appeal status changed concurrently")
	}
	metrics.AppealTransitionsTotal.WithLabelValues(string(req.Status), "ok").Inc()

	appeal.Status = req.Status
	if req.ResolutionNotes != nil {
		appeal.ResolutionNotes = req.ResolutionNotes
	}

	if s.Notify != nil {
		s.Notify.Notify(ctx, appeal.AppellantMemberID, "appeal_"+string(req.Status),
			"Your appeal status changed to "+string(req.Status), req.ResolutionNotes)
	}

	return appeal, nil
}

// DeleteAppeal soft-deletes; permitted even on finalized appeals, and a
// second delete reports NotFound.
func (s *AppealService) DeleteAppeal(ctx context.Context, actor *middleware.AuthContext, id string) error {
	if !actor.Role.CanModerate() {
		return apperr.Forbidden("moderator role required")
	}
	ok, err := s.Appeals.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("appeal not found")
	}
	return nil
}
