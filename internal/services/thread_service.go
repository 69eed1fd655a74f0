package services

import (
	"context"
	"errors"

	"board-backend/internal/apperr"
	"board-backend/internal/middleware"
	"board-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type ThreadRepo interface {
	Create(ctx context.Context, t *models.Thread) error
	Get(ctx context.Context, id string) (*models.Thread, error)
	List(ctx context.Context, limit, offset int) ([]*models.Thread, error)
	Update(ctx context.Context, t *models.Thread) error
	SoftDelete(ctx context.Context, id string) (bool, error)
}

type ThreadService struct {
	Threads ThreadRepo
}

func NewThreadService(threads ThreadRepo) *ThreadService {
	return &ThreadService{Threads: threads}
}

func (s *ThreadService) Create(ctx context.Context, actor *middleware.AuthContext, req *models.CreateThreadRequest) (*models.Thread, error) {
	if req.Title == "" {
		return nil, apperr.Validation("title is required")
	}

	thread := &models.Thread{AuthorID: actor.MemberID, Title: req.Title}
	if err := s.Threads.Create(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *ThreadService) Get(ctx context.Context, id string) (*models.Thread, error) {
	thread, err := s.Threads.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("thread not found")
		}
		return nil, err
	}
	return thread, nil
}

func (s *ThreadService) List(ctx context.Context, limit, offset int) ([]*models.Thread, error) {
	return s.Threads.List(ctx, limit, offset)
}

// Update edits title and lock state. Title edits are author-or-moderator;
// locking a thread is a moderator power.
func (s *ThreadService) Update(ctx context.Context, actor *middleware.AuthContext, id string, req *models.UpdateThreadRequest) (*models.Thread, error) {
	thread, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if thread.AuthorID != actor.MemberID && !actor.Role.CanModerate() {
		return nil, apperr.Forbidden("only the author or a moderator may edit this thread")
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperr.Validation("title must not be empty")
		}
		thread.Title = *req.Title
	}
	if req.Locked != nil {
		if !actor.Role.CanModerate() {
			return nil, apperr.Forbidden("only a moderator may lock or unlock a thread")
		}
		thread.Locked = *req.Locked
	}

	if err := s.Threads.Update(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *ThreadService) Delete(ctx context.Context, actor *middleware.AuthContext, id string) error {
	thread, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if thread.AuthorID != actor.MemberID && !actor.Role.CanModerate() {
		return apperr.Forbidden("only the author or a moderator may delete this thread")
	}

	ok, err := s.Threads.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("thread not found")
	}
	return nil
}
