package repositories

import (
	"context"
	"fmt"

	"board-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TargetRepository answers liveness checks for polymorphic target
// references on moderation actions and flag reports.
type TargetRepository struct {
	DB *pgxpool.Pool
}

func NewTargetRepository(db *pgxpool.Pool) *TargetRepository {
	return &TargetRepository{DB: db}
}

func (r *TargetRepository) TargetExists(ctx context.Context, targetType models.TargetType, id string) (bool, error) {
	var table string
	switch targetType {
	case models.TargetMember:
		table = "members"
	case models.TargetPost:
		table = "posts"
	case models.TargetComment:
		table = "comments"
	default:
		return false, fmt.Errorf("unknown target type %q", targetType)
	}

	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+table+` WHERE id=$1 AND deleted_at IS NULL)`, id,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
