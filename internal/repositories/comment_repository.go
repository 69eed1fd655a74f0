package repositories

import (
	"context"

	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	DB *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *models.Comment) error {
	c.ID = uuid.NewString()
	return r.DB.QueryRow(ctx,
		`INSERT INTO comments(id, post_id, author_id, body) VALUES($1, $2, $3, $4)
         RETURNING created_at, updated_at`,
		c.ID, c.PostID, c.AuthorID, c.Body,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *CommentRepository) Get(ctx context.Context, id string) (*models.Comment, error) {
	var c models.Comment
	err := r.DB.QueryRow(ctx,
		`SELECT id, post_id, author_id, body, created_at, updated_at, deleted_at
         FROM comments WHERE id=$1 AND deleted_at IS NULL`, id,
	).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*models.Comment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, post_id, author_id, body, created_at, updated_at, deleted_at
         FROM comments WHERE post_id=$1 AND deleted_at IS NULL
         ORDER BY created_at ASC LIMIT $2 OFFSET $3`, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Body, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
			return nil, err
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) UpdateBody(ctx context.Context, id, body string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE comments SET body=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`, body, id)
	return err
}

func (r *CommentRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE comments SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
