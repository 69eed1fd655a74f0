package repositories

import (
	"context"

	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ThreadRepository struct {
	DB *pgxpool.Pool
}

func NewThreadRepository(db *pgxpool.Pool) *ThreadRepository {
	return &ThreadRepository{DB: db}
}

func (r *ThreadRepository) Create(ctx context.Context, t *models.Thread) error {
	t.ID = uuid.NewString()
	return r.DB.QueryRow(ctx,
		`INSERT INTO threads(id, author_id, title) VALUES($1, $2, $3)
         RETURNING created_at, updated_at`,
		t.ID, t.AuthorID, t.Title,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *ThreadRepository) Get(ctx context.Context, id string) (*models.Thread, error) {
	var t models.Thread
	err := r.DB.QueryRow(ctx,
		`SELECT id, author_id, title, locked, created_at, updated_at, deleted_at
         FROM threads WHERE id=$1 AND deleted_at IS NULL`, id,
	).Scan(&t.ID, &t.AuthorID, &t.Title, &t.Locked, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ThreadRepository) List(ctx context.Context, limit, offset int) ([]*models.Thread, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, author_id, title, locked, created_at, updated_at, deleted_at
         FROM threads WHERE deleted_at IS NULL
         ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var threads []*models.Thread
	for rows.Next() {
		var t models.Thread
		if err := rows.Scan(&t.ID, &t.AuthorID, &t.Title, &t.Locked, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt); err != nil {
			return nil, err
		}
		threads = append(threads, &t)
	}
	return threads, rows.Err()
}

func (r *ThreadRepository) Update(ctx context.Context, t *models.Thread) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE threads SET title=$1, locked=$2, updated_at=NOW() WHERE id=$3 AND deleted_at IS NULL`,
		t.Title, t.Locked, t.ID)
	return err
}

func (r *ThreadRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE threads SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
