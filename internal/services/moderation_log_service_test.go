package services

import (
	"context"
	"testing"

	"board-backend/internal/apperr"
	"board-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAppendLogEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("entry lands on a live action", func(t *testing.T) {
		logs := newFakeLogRepo()
		logs.liveIDs["action-1"] = true
		svc := NewModerationLogService(logs)

		details := "manual review completed"
		entry, err := svc.Append(ctx, moderatorCtx("mod-1"), &models.CreateModerationLogRequest{
			RelatedActionID: "action-1",
			EventType:       "note",
			EventDetails:    &details,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, "mod-1", *entry.ActorMemberID)
	})

	t.Run("dead action reads as not found", func(t *testing.T) {
		svc := NewModerationLogService(newFakeLogRepo())

		_, err := svc.Append(ctx, moderatorCtx("mod-1"), &models.CreateModerationLogRequest{
			RelatedActionID: "action-gone",
			EventType:       "note",
		})
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("members cannot append", func(t *testing.T) {
		svc := NewModerationLogService(newFakeLogRepo())

		_, err := svc.Append(ctx, memberCtx("member-1"), &models.CreateModerationLogRequest{
			RelatedActionID: "action-1",
			EventType:       "note",
		})
		assert.True(t, apperr.IsForbidden(err))
	})

	t.Run("event_type is required", func(t *testing.T) {
		svc := NewModerationLogService(newFakeLogRepo())

		_, err := svc.Append(ctx, moderatorCtx("mod-1"), &models.CreateModerationLogRequest{
			RelatedActionID: "action-1",
		})
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestUpdateLogDetails(t *testing.T) {
	ctx := context.Background()
	logs := newFakeLogRepo()
	logs.liveIDs["action-1"] = true
	svc := NewModerationLogService(logs)

	details := "v1"
	entry, err := svc.Append(ctx, moderatorCtx("mod-1"), &models.CreateModerationLogRequest{
		RelatedActionID: "action-1",
		EventType:       "note",
		EventDetails:    &details,
	})
	assert.NoError(t, err)

	revised := "v2"
	got, err := svc.UpdateDetails(ctx, moderatorCtx("mod-2"), entry.ID, &models.UpdateModerationLogRequest{
		EventDetails: &revised,
	})
	assert.NoError(t, err)
	assert.Equal(t, "v2", *got.EventDetails)

	// Identity fields are untouched by the update path
	assert.Equal(t, entry.EventType, got.EventType)
	assert.Equal(t, entry.RelatedActionID, got.RelatedActionID)

	_, err = svc.UpdateDetails(ctx, moderatorCtx("mod-2"), "missing", &models.UpdateModerationLogRequest{
		EventDetails: &revised,
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteLogEntry(t *testing.T) {
	ctx := context.Background()
	logs := newFakeLogRepo()
	logs.liveIDs["action-1"] = true
	svc := NewModerationLogService(logs)

	entry, err := svc.Append(ctx, moderatorCtx("mod-1"), &models.CreateModerationLogRequest{
		RelatedActionID: "action-1",
		EventType:       "note",
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, moderatorCtx("mod-1"), entry.ID))
	assert.True(t, apperr.IsNotFound(svc.Delete(ctx, moderatorCtx("mod-1"), entry.ID)))
	_, err = svc.Get(ctx, entry.ID)
	assert.True(t, apperr.IsNotFound(err))
}
