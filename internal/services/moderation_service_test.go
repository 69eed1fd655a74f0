package services

import (
	"context"
	"testing"

	"board-backend/internal/apperr"
	"board-backend/internal/middleware"
	"board-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func newModerationFixture() (*ModerationService, *fakeActionRepo, *fakeLogRepo, *fakeTargets, *fakeNotifier) {
	actions := newFakeActionRepo()
	logs := newFakeLogRepo()
	targets := newFakeTargets()
	notifier := &fakeNotifier{}
	svc := NewModerationService(actions, logs, targets, notifier)
	return svc, actions, logs, targets, notifier
}

func TestCreateAction(t *testing.T) {
	ctx := context.Background()

	t.Run("members are forbidden", func(t *testing.T) {
		svc, _, _, _, _ := newModerationFixture()
		_, err := svc.CreateAction(ctx, memberCtx("member-1"), &models.CreateModerationActionRequest{
			ActionType:   models.ActionWarn,
			ActionReason: "rude",
		})
		assert.True(t, apperr.IsForbidden(err))
	})

	t.Run("unknown action type rejected", func(t *testing.T) {
		svc, _, _, _, _ := newModerationFixture()
		_, err := svc.CreateAction(ctx, moderatorCtx("mod-1"), &models.CreateModerationActionRequest{
			ActionType:   models.ActionType("shadowban"),
			ActionReason: "rude",
		})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("target fields must come together", func(t *testing.T) {
		svc, _, _, _, _ := newModerationFixture()
		targetType := models.TargetPost
		_, err := svc.CreateAction(ctx, moderatorCtx("mod-1"), &models.CreateModerationActionRequest{
			ActionType:   models.ActionRemove,
			ActionReason: "spam",
			TargetType:   &targetType,
		})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("dead target rejected", func(t *testing.T) {
		svc, _, _, _, _ := newModerationFixture()
		targetType := models.TargetPost
		targetID := "post-gone"
		_, err := svc.CreateAction(ctx, moderatorCtx("mod-1"), &models.CreateModerationActionRequest{
			ActionType:   models.ActionRemove,
			ActionReason: "spam",
			TargetType:   &targetType,
			TargetID:     &targetID,
		})
		assert.True(t, apperr.IsValidation(err))
	})

	t.Run("live member target is notified", func(t *testing.T) {
		svc, _, _, targets, notifier := newModerationFixture()
		targets.add(models.TargetMember, "member-1")
		targetType := models.TargetMember
		targetID := "member-1"

		action, err := svc.CreateAction(ctx, moderatorCtx("mod-1"), &models.CreateModerationActionRequest{
			ActionType:   models.ActionMute,
			ActionReason: "spam",
			TargetType:   &targetType,
			TargetID:     &targetID,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.ActionStatusActive, action.Status)
		assert.Equal(t, "mod-1", action.ModeratorID)

		assert.Len(t, notifier.sent, 1)
		assert.Equal(t, "member-1", notifier.sent[0].MemberID)
		assert.Equal(t, "moderation_action", notifier.sent[0].Kind)
	})

	t.Run("actions without target are allowed", func(t *testing.T) {
		svc, _, _, _, notifier := newModerationFixture()
		action, err := svc.CreateAction(ctx, moderatorCtx("mod-1"), &models.CreateModerationActionRequest{
			ActionType:   models.ActionEscalate,
			ActionReason: "coordinated raid pattern",
		})
		assert.NoError(t, err)
		assert.Nil(t, action.TargetType)
		assert.Empty(t, notifier.sent)
	})
}

func TestUpdateAction(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc *ModerationService) *models.ModerationAction {
		t.Helper()
		action, err := svc.CreateAction(ctx, moderatorCtx("mod-1"), &models.CreateModerationActionRequest{
			ActionType:   models.ActionWarn,
			ActionReason: "first offense",
		})
		assert.NoError(t, err)
		return action
	}

	t.Run("creator updates own action", func(t *testing.T) {
		svc, _, _, _, _ := newModerationFixture()
		action := seed(t, svc)

		newType := models.ActionMute
		reversed := models.ActionStatusReversed
		got, err := svc.UpdateAction(ctx, moderatorCtx("mod-1"), action.ID, &models.UpdateModerationActionRequest{
			ActionType: &newType,
			Status:     &reversed,
		})
		assert.NoError(t, err)
		assert.Equal(t, models.ActionMute, got.ActionType)
		assert.Equal(t, models.ActionStatusReversed, got.Status)
		// Untouched fields survive
		assert.Equal(t, "first offense", got.ActionReason)
	})

	t.Run("another moderator is forbidden, admin is not", func(t *testing.T) {
		svc, _, _, _, _ := newModerationFixture()
		action := seed(t, svc)

		reason := "updated"
		_, err := svc.UpdateAction(ctx, moderatorCtx("mod-2"), action.ID, &models.UpdateModerationActionRequest{
			ActionReason: &reason,
		})
		assert.True(t, apperr.IsForbidden(err))

		admin := &middleware.AuthContext{MemberID: "admin-1", Role: models.RoleAdmin}
		got, err := svc.UpdateAction(ctx, admin, action.ID, &models.UpdateModerationActionRequest{
			ActionReason: &reason,
		})
		assert.NoError(t, err)
		assert.Equal(t, "updated", got.ActionReason)
	})

	t.Run("empty reason rejected", func(t *testing.T) {
		svc, _, _, _, _ := newModerationFixture()
		action := seed(t, svc)

		empty := ""
		_, err := svc.UpdateAction(ctx, moderatorCtx("mod-1"), action.ID, &models.UpdateModerationActionRequest{
			ActionReason: &empty,
		})
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestDeleteAction(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, _ := newModerationFixture()

	action, err := svc.CreateAction(ctx, moderatorCtx("mod-1"), &models.CreateModerationActionRequest{
		ActionType:   models.ActionWarn,
		ActionReason: "first offense",
	})
	assert.NoError(t, err)

	assert.True(t, apperr.IsForbidden(svc.DeleteAction(ctx, moderatorCtx("mod-2"), action.ID)))
	assert.NoError(t, svc.DeleteAction(ctx, moderatorCtx("mod-1"), action.ID))

	// The second delete must not silently succeed
	assert.True(t, apperr.IsNotFound(svc.DeleteAction(ctx, moderatorCtx("mod-1"), action.ID)))
	_, err = svc.GetAction(ctx, action.ID)
	assert.True(t, apperr.IsNotFound(err))
}
