package repositories

import (
	"context"

	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostRepository struct {
	DB *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(ctx context.Context, p *models.Post) error {
	p.ID = uuid.NewString()
	return r.DB.QueryRow(ctx,
		`INSERT INTO posts(id, thread_id, author_id, body) VALUES($1, $2, $3, $4)
         RETURNING created_at, updated_at`,
		p.ID, p.ThreadID, p.AuthorID, p.Body,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PostRepository) Get(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := r.DB.QueryRow(ctx,
		`SELECT id, thread_id, author_id, body, created_at, updated_at, deleted_at
         FROM posts WHERE id=$1 AND deleted_at IS NULL`, id,
	).Scan(&p.ID, &p.ThreadID, &p.AuthorID, &p.Body, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepository) ListByThread(ctx context.Context, threadID string, limit, offset int) ([]*models.Post, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, thread_id, author_id, body, created_at, updated_at, deleted_at
         FROM posts WHERE thread_id=$1 AND deleted_at IS NULL
         ORDER BY created_at ASC LIMIT $2 OFFSET $3`, threadID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.ThreadID, &p.AuthorID, &p.Body, &p.CreatedAt, &p.UpdatedAt, &p.DeletedAt); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) UpdateBody(ctx context.Context, id, body string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE posts SET body=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`, body, id)
	return err
}

func (r *PostRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE posts SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
