package services

import (
	"context"
	"log"

	"board-backend/internal/apperr"
	"board-backend/internal/middleware"
	"board-backend/internal/models"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByMember(ctx context.Context, memberID string, unreadOnly bool, limit, offset int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, memberID string) (bool, error)
	SoftDelete(ctx context.Context, id, memberID string) (bool, error)
}

// Streamer pushes a payload to a member's live websocket connections, if
// any. The durable row is written regardless.
type Streamer interface {
	Push(memberID string, payload any)
}

type NotificationService struct {
	Repo   NotificationRepo
	Stream Streamer
}

func NewNotificationService(repo NotificationRepo, stream Streamer) *NotificationService {
	return &NotificationService{Repo: repo, Stream: stream}
}

// Notify persists a notification and pushes it to live connections.
// Failures are logged; notification delivery never fails a caller's write.
func (s *NotificationService) Notify(ctx context.Context, memberID, kind, subject string, body *string) {
	n := &models.Notification{MemberID: memberID, Kind: kind, Subject: subject, Body: body}
	if err := s.Repo.Create(ctx, n); err != nil {
		log.Printf("[Notify] persist failed for member %s: %v", memberID, err)
		return
	}
	if s.Stream != nil {
		s.Stream.Push(memberID, n.DTO())
	}
}

func (s *NotificationService) List(ctx context.Context, actor *middleware.AuthContext, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	return s.Repo.ListByMember(ctx, actor.MemberID, unreadOnly, limit, offset)
}

func (s *NotificationService) MarkRead(ctx context.Context, actor *middleware.AuthContext, id string) error {
	ok, err := s.Repo.MarkRead(ctx, id, actor.MemberID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("notification not found")
	}
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, actor *middleware.AuthContext, id string) error {
	ok, err := s.Repo.SoftDelete(ctx, id, actor.MemberID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("notification not found")
	}
	return nil
}
