package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"board-backend/internal/apperr"
	"board-backend/internal/cache"
	"board-backend/internal/middleware"
	"board-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type PostRepo interface {
	Create(ctx context.Context, p *models.Post) error
	Get(ctx context.Context, id string) (*models.Post, error)
	ListByThread(ctx context.Context, threadID string, limit, offset int) ([]*models.Post, error)
	UpdateBody(ctx context.Context, id, body string) error
	SoftDelete(ctx context.Context, id string) (bool, error)
}

// ThreadGetter is the thread lookup the post service needs to enforce
// lock and liveness rules.
type ThreadGetter interface {
	Get(ctx context.Context, id string) (*models.Thread, error)
}

type PostService struct {
	Posts   PostRepo
	Threads ThreadGetter
}

func NewPostService(posts PostRepo, threads ThreadGetter) *PostService {
	return &PostService{Posts: posts, Threads: threads}
}

// Create adds a post to a thread. A deleted thread reads as NotFound; a
// locked thread rejects new posts.
func (s *PostService) Create(ctx context.Context, actor *middleware.AuthContext, req *models.CreatePostRequest) (*models.Post, error) {
	if req.ThreadID == "" {
		return nil, apperr.Validation("thread_id is required")
	}
	if req.Body == "" {
		return nil, apperr.Validation("body is required")
	}

	thread, err := s.Threads.Get(ctx, req.ThreadID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("thread not found")
		}
		return nil, err
	}
	if thread.Locked {
		return nil, apperr.Conflict("thread is locked")
	}

	post := &models.Post{ThreadID: req.ThreadID, AuthorID: actor.MemberID, Body: req.Body}
	if err := s.Posts.Create(ctx, post); err != nil {
		return nil, err
	}

	cache.InvalidateThreadPosts(ctx, req.ThreadID)
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.Posts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	return post, nil
}

// ListByThread serves the first page from Redis when it can; deeper pages
// always hit the database.
func (s *PostService) ListByThread(ctx context.Context, threadID string, limit, offset int) ([]*models.Post, error) {
	if _, err := s.Threads.Get(ctx, threadID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("thread not found")
		}
		return nil, err
	}

	if offset == 0 {
		if data, ok := cache.GetCachedThreadPosts(ctx, threadID); ok {
			var posts []*models.Post
			if err := json.Unmarshal(data, &posts); err == nil && len(posts) <= limit {
				return posts, nil
			}
		}
	}

	posts, err := s.Posts.ListByThread(ctx, threadID, limit, offset)
	if err != nil {
		return nil, err
	}

	if offset == 0 {
		if data, err := json.Marshal(posts); err == nil {
			cache.CacheThreadPosts(ctx, threadID, data)
		} else {
			log.Printf("[Posts] cache marshal failed for thread %s: %v", threadID, err)
		}
	}
	return posts, nil
}

func (s *PostService) Update(ctx context.Context, actor *middleware.AuthContext, id string, req *models.UpdatePostRequest) (*models.Post, error) {
	if req.Body == "" {
		return nil, apperr.Validation("body is required")
	}

	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.MemberID && !actor.Role.CanModerate() {
		return nil, apperr.Forbidden("only the author or a moderator may edit this post")
	}

	if err := s.Posts.UpdateBody(ctx, id, req.Body); err != nil {
		return nil, err
	}
	post.Body = req.Body

	cache.InvalidateThreadPosts(ctx, post.ThreadID)
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, actor *middleware.AuthContext, id string) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.MemberID && !actor.Role.CanModerate() {
		return apperr.Forbidden("only the author or a moderator may delete this post")
	}

	ok, err := s.Posts.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("post not found")
	}

	cache.InvalidateThreadPosts(ctx, post.ThreadID)
	return nil
}
