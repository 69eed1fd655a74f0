package repositories

import (
	"context"

	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	n.ID = uuid.NewString()
	return r.DB.QueryRow(ctx,
		`INSERT INTO notifications(id, member_id, kind, subject, body)
         VALUES($1, $2, $3, $4, $5)
         RETURNING created_at`,
		n.ID, n.MemberID, n.Kind, n.Subject, n.Body,
	).Scan(&n.CreatedAt)
}

func (r *NotificationRepository) ListByMember(ctx context.Context, memberID string, unreadOnly bool, limit, offset int) ([]*models.Notification, error) {
	query := `SELECT id, member_id, kind, subject, body, read_at, created_at, deleted_at
         FROM notifications WHERE member_id=$1 AND deleted_at IS NULL`
	if unreadOnly {
		query += ` AND read_at IS NULL`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.DB.Query(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.MemberID, &n.Kind, &n.Subject, &n.Body,
			&n.ReadAt, &n.CreatedAt, &n.DeletedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkRead stamps read_at once; the member predicate stops cross-member reads.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, memberID string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE notifications SET read_at=NOW()
         WHERE id=$1 AND member_id=$2 AND read_at IS NULL AND deleted_at IS NULL`,
		id, memberID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NotificationRepository) SoftDelete(ctx context.Context, id, memberID string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE notifications SET deleted_at=NOW()
         WHERE id=$1 AND member_id=$2 AND deleted_at IS NULL`, id, memberID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
