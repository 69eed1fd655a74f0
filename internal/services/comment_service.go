package services

import (
	"context"
	"errors"

	"board-backend/internal/apperr"
	"board-backend/internal/middleware"
	"board-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type CommentRepo interface {
	Create(ctx context.Context, c *models.Comment) error
	Get(ctx context.Context, id string) (*models.Comment, error)
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]*models.Comment, error)
	UpdateBody(ctx context.Context, id, body string) error
	SoftDelete(ctx context.Context, id string) (bool, error)
}

// PostGetter is the post lookup the comment service needs for liveness.
type PostGetter interface {
	Get(ctx context.Context, id string) (*models.Post, error)
}

type CommentService struct {
	Comments CommentRepo
	Posts    PostGetter
}

func NewCommentService(comments CommentRepo, posts PostGetter) *CommentService {
	return &CommentService{Comments: comments, Posts: posts}
}

// Create attaches a comment to a live post.
func (s *CommentService) Create(ctx context.Context, actor *middleware.AuthContext, req *models.CreateCommentRequest) (*models.Comment, error) {
	if req.PostID == "" {
		return nil, apperr.Validation("post_id is required")
	}
	if req.Body == "" {
		return nil, apperr.Validation("body is required")
	}

	if _, err := s.Posts.Get(ctx, req.PostID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}

	comment := &models.Comment{PostID: req.PostID, AuthorID: actor.MemberID, Body: req.Body}
	if err := s.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (*models.Comment, error) {
	comment, err := s.Comments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.Posts.Get(ctx, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, err
	}
	return s.Comments.ListByPost(ctx, postID, limit, offset)
}

func (s *CommentService) Update(ctx context.Context, actor *middleware.AuthContext, id string, req *models.UpdateCommentRequest) (*models.Comment, error) {
	if req.Body == "" {
		return nil, apperr.Validation("body is required")
	}

	comment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != actor.MemberID && !actor.Role.CanModerate() {
		return nil, apperr.Forbidden("only the author or a moderator may edit this comment")
	}

	if err := s.Comments.UpdateBody(ctx, id, req.Body); err != nil {
		return nil, err
	}
	comment.Body = req.Body
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *middleware.AuthContext, id string) error {
	comment, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if comment.AuthorID != actor.MemberID && !actor.Role.CanModerate() {
		return apperr.Forbidden("only the author or a moderator may delete this comment")
	}

	ok, err := s.Comments.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("comment not found")
	}
	return nil
}
