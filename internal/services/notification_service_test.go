package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"board-backend/internal/apperr"
	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationRepo struct {
	mu        sync.Mutex
	rows      map[string]*models.Notification
	createErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{rows: make(map[string]*models.Notification)}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	n.ID = uuid.NewString()
	cp := *n
	f.rows[n.ID] = &cp
	return nil
}

func (f *fakeNotificationRepo) ListByMember(ctx context.Context, memberID string, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.rows {
		if n.MemberID != memberID || n.DeletedAt != nil {
			continue
		}
		if unreadOnly && n.ReadAt != nil {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, id, memberID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.rows[id]
	if !ok || n.MemberID != memberID || n.DeletedAt != nil {
		return false, nil
	}
	now := frozenNow
	n.ReadAt = &now
	return true, nil
}

func (f *fakeNotificationRepo) SoftDelete(ctx context.Context, id, memberID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.rows[id]
	if !ok || n.MemberID != memberID || n.DeletedAt != nil {
		return false, nil
	}
	now := frozenNow
	n.DeletedAt = &now
	return true, nil
}

type fakeStreamer struct {
	mu     sync.Mutex
	pushed []string // member IDs
}

func (f *fakeStreamer) Push(memberID string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, memberID)
}

func TestNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and pushes", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		stream := &fakeStreamer{}
		svc := NewNotificationService(repo, stream)

		svc.Notify(ctx, "member-1", "moderation_action", "You have been muted", nil)

		rows, err := svc.List(ctx, memberCtx("member-1"), false, 50, 0)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, []string{"member-1"}, stream.pushed)
	})

	t.Run("persist failure skips the push", func(t *testing.T) {
		repo := newFakeNotificationRepo()
		repo.createErr = errors.New("connection refused")
		stream := &fakeStreamer{}
		svc := NewNotificationService(repo, stream)

		svc.Notify(ctx, "member-1", "appeal_denied", "Appeal decided", nil)
		assert.Empty(t, stream.pushed)
	})
}

func TestNotificationScoping(t *testing.T) {
	ctx := context.Background()
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, &fakeStreamer{})

	svc.Notify(ctx, "member-1", "appeal_filed", "An appeal was filed", nil)

	rows, err := svc.List(ctx, memberCtx("member-1"), false, 50, 0)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	id := rows[0].ID

	// Another member cannot touch it
	assert.True(t, apperr.IsNotFound(svc.MarkRead(ctx, memberCtx("member-2"), id)))
	assert.True(t, apperr.IsNotFound(svc.Delete(ctx, memberCtx("member-2"), id)))

	assert.NoError(t, svc.MarkRead(ctx, memberCtx("member-1"), id))

	unread, err := svc.List(ctx, memberCtx("member-1"), true, 50, 0)
	assert.NoError(t, err)
	assert.Empty(t, unread)

	assert.NoError(t, svc.Delete(ctx, memberCtx("member-1"), id))
	assert.True(t, apperr.IsNotFound(svc.Delete(ctx, memberCtx("member-1"), id)))
}
