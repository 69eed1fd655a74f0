package services

import (
	"context"
	"testing"

	"board-backend/internal/apperr"
	"board-backend/internal/middleware"
	"board-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func memberCtx(id string) *middleware.AuthContext {
	return &middleware.AuthContext{MemberID: id, Username: "u-" + id, Role: models.RoleMember}
}

func moderatorCtx(id string) *middleware.AuthContext {
	return &middleware.AuthContext{MemberID: id, Username: "m-" + id, Role: models.RoleModerator}
}

// seedAction stores an active action against the given member target.
func seedAction(t *testing.T, actions *fakeActionRepo, moderatorID, targetMemberID string) *models.ModerationAction {
	t.Helper()
	targetType := models.TargetMember
	action := &models.ModerationAction{
		ModeratorID:  moderatorID,
		TargetType:   &targetType,
		TargetID:     &targetMemberID,
		ActionType:   models.ActionMute,
		ActionReason: "spamming",
		Status:       models.ActionStatusActive,
	}
	err := actions.Create(context.Background(), action)
	assert.NoError(t, err)
	return action
}

func newAppealFixture() (*AppealService, *fakeAppealRepo, *fakeActionRepo, *fakeNotifier) {
	appeals := newFakeAppealRepo()
	actions := newFakeActionRepo()
	notifier := &fakeNotifier{}
	svc := NewAppealService(appeals, actions, notifier)
	return svc, appeals, actions, notifier
}

func TestCreateAppeal(t *testing.T) {
	ctx := context.Background()

	t.Run("targeted member can file", func(t *testing.T) {
		svc, _, actions, notifier := newAppealFixture()
		action := seedAction(t, actions, "mod-1", "member-1")

		appeal, err := svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
			ModerationActionID: action.ID,
			AppealRationale:    "I was quoting someone else",
		})
		assert.NoError(t, err)
		assert.Equal(t, models.AppealPending, appeal.Status)
		assert.Equal(t, "member-1", appeal.AppellantMemberID)

		// The acting moderator hears about the filing
		assert.Len(t, notifier.sent, 1)
		assert.Equal(t, "mod-1", notifier.sent[0].MemberID)
		assert.Equal(t, "appeal_filed", notifier.sent[0].Kind)
	})

	t.Run("other members are forbidden", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		action := seedAction(t, actions, "mod-1", "member-1")

		_, err := svc.CreateAppeal(ctx, memberCtx("member-2"), &models.CreateAppealRequest{
			ModerationActionID: action.ID,
			AppealRationale:    "unfair",
		})
		assert.True(t, apperr.IsForbidden(err))
	})

	t.Run("second live appeal conflicts", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		action := seedAction(t, actions, "mod-1", "member-1")

		_, err := svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
			ModerationActionID: action.ID,
			AppealRationale:    "first",
		})
		assert.NoError(t, err)

		_, err = svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
			ModerationActionID: action.ID,
			AppealRationale:    "second",
		})
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("unknown action is not found", func(t *testing.T) {
		svc, _, _, _ := newAppealFixture()
		_, err := svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
			ModerationActionID: "nope",
			AppealRationale:    "whatever",
		})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("rationale is required", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		action := seedAction(t, actions, "mod-1", "member-1")
		_, err := svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
			ModerationActionID: action.ID,
		})
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestAppealTransitions(t *testing.T) {
	ctx := context.Background()
	notes := "reviewed the thread history"

	file := func(t *testing.T, svc *AppealService, actions *fakeActionRepo) *models.Appeal {
		t.Helper()
		action := seedAction(t, actions, "mod-1", "member-1")
		appeal, err := svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
			ModerationActionID: action.ID,
			AppealRationale:    "please reconsider",
		})
		assert.NoError(t, err)
		return appeal
	}

	t.Run("pending to under_review", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		appeal := file(t, svc, actions)

		got, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status: models.AppealUnderReview,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.AppealUnderReview, got.Status)
	})

	t.Run("pending straight to closed", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		appeal := file(t, svc, actions)

		got, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status: models.AppealClosed,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.AppealClosed, got.Status)
	})

	t.Run("verdicts need resolution notes", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		appeal := file(t, svc, actions)

		_, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status: models.AppealAccepted,
		})
		assert.True(t, apperr.IsValidation(err))

		got, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status:          models.AppealAccepted,
			ResolutionNotes: &notes,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.AppealAccepted, got.Status)
		assert.Equal(t, &notes, got.ResolutionNotes)
	})

	t.Run("closing needs no notes", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		appeal := file(t, svc, actions)

		_, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status: models.AppealClosed,
		})
		assert.NoError(t, err)
	})

	t.Run("terminal appeals are immutable", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		appeal := file(t, svc, actions)

		_, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status:          models.AppealDenied,
			ResolutionNotes: &notes,
		})
		assert.NoError(t, err)

		_, err = svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status:          models.AppealAccepted,
			ResolutionNotes: &notes,
		})
		assert.True(t, apperr.IsConflict(err))
		assert.Contains(t, err.Error(), "finalized")
	})

	t.Run("members cannot transition", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		appeal := file(t, svc, actions)

		_, err := svc.Transition(ctx, memberCtx("member-1"), appeal.ID, &models.TransitionAppealRequest{
			Status: models.AppealClosed,
		})
		assert.True(t, apperr.IsForbidden(err))
	})

	t.Run("unknown status is validation", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		appeal := file(t, svc, actions)

		_, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status: models.AppealStatus("escalated"),
		})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("transition writes an audit entry", func(t *testing.T) {
		svc, appeals, actions, _ := newAppealFixture()
		appeal := file(t, svc, actions)

		_, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status:          models.AppealAccepted,
			ResolutionNotes: &notes,
		})
		assert.NoError(t, err)
		assert.Len(t, appeals.logs, 1)
		assert.Equal(t, "appeal_accepted", appeals.logs[0].EventType)
		assert.Equal(t, appeal.ModerationActionID, appeals.logs[0].RelatedActionID)
	})

	t.Run("appellant is notified of the outcome", func(t *testing.T) {
		svc, _, actions, notifier := newAppealFixture()
		appeal := file(t, svc, actions)

		_, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status:          models.AppealDenied,
			ResolutionNotes: &notes,
		})
		assert.NoError(t, err)

		last := notifier.sent[len(notifier.sent)-1]
		assert.Equal(t, "member-1", last.MemberID)
		assert.Equal(t, "appeal_denied", last.Kind)
	})
}

// Two moderators race the same resolution; the conditional update lets
// exactly one through and the loser sees Conflict.
func TestAppealTransitionRace(t *testing.T) {
	ctx := context.Background()
	svc, _, actions, _ := newAppealFixture()
	action := seedAction(t, actions, "mod-1", "member-1")
	appeal, err := svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
		ModerationActionID: action.ID,
		AppealRationale:    "please reconsider",
	})
	assert.NoError(t, err)

	notes := "resolved"
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			_, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
				Status:          models.AppealDenied,
				ResolutionNotes: &notes,
			})
			results <- err
		}()
	}

	var wins, conflicts int
	for i := 0; i < 2; i++ {
		err := <-results
		if err == nil {
			wins++
		} else if apperr.IsConflict(err) {
			conflicts++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)
}

func TestAmendRationale(t *testing.T) {
	ctx := context.Background()
	notes := "done"

	t.Run("appellant amends an open appeal", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		action := seedAction(t, actions, "mod-1", "member-1")
		appeal, _ := svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
			ModerationActionID: action.ID,
			AppealRationale:    "v1",
		})

		got, err := svc.AmendRationale(ctx, memberCtx("member-1"), appeal.ID,
			&models.UpdateAppealRationaleRequest{AppealRationale: "v2"})
		assert.NoError(t, err)
		assert.Equal(t, "v2", got.AppealRationale)
	})

	t.Run("only the appellant may amend", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		action := seedAction(t, actions, "mod-1", "member-1")
		appeal, _ := svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
			ModerationActionID: action.ID,
			AppealRationale:    "v1",
		})

		_, err := svc.AmendRationale(ctx, memberCtx("member-2"), appeal.ID,
			&models.UpdateAppealRationaleRequest{AppealRationale: "v2"})
		assert.True(t, apperr.IsForbidden(err))
	})

	t.Run("finalized appeals reject amendment", func(t *testing.T) {
		svc, _, actions, _ := newAppealFixture()
		action := seedAction(t, actions, "mod-1", "member-1")
		appeal, _ := svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
			ModerationActionID: action.ID,
			AppealRationale:    "v1",
		})
		_, err := svc.Transition(ctx, moderatorCtx("mod-2"), appeal.ID, &models.TransitionAppealRequest{
			Status:          models.AppealDenied,
			ResolutionNotes: &notes,
		})
		assert.NoError(t, err)

		_, err = svc.AmendRationale(ctx, memberCtx("member-1"), appeal.ID,
			&models.UpdateAppealRationaleRequest{AppealRationale: "v2"})
		assert.True(t, apperr.IsConflict(err))
	})
}

func TestDeleteAppeal(t *testing.T) {
	ctx := context.Background()
	svc, _, actions, _ := newAppealFixture()
	action := seedAction(t, actions, "mod-1", "member-1")
	appeal, _ := svc.CreateAppeal(ctx, memberCtx("member-1"), &models.CreateAppealRequest{
		ModerationActionID: action.ID,
		AppealRationale:    "v1",
	})

	assert.True(t, apperr.IsForbidden(svc.DeleteAppeal(ctx, memberCtx("member-1"), appeal.ID)))
	assert.NoError(t, svc.DeleteAppeal(ctx, moderatorCtx("mod-2"), appeal.ID))

	// Second delete reports NotFound, and reads no longer see the row
	assert.True(t, apperr.IsNotFound(svc.DeleteAppeal(ctx, moderatorCtx("mod-2"), appeal.ID)))
	_, err := svc.GetAppeal(ctx, appeal.ID)
	assert.True(t, apperr.IsNotFound(err))
}
