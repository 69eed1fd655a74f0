package repositories

import (
	"context"
	"errors"
	"time"

	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ModerationLogRepository struct {
	DB *pgxpool.Pool
}

func NewModerationLogRepository(db *pgxpool.Pool) *ModerationLogRepository {
	return &ModerationLogRepository{DB: db}
}

const logColumns = `id, actor_member_id, related_action_id, related_appeal_id,
	 related_report_id, event_type, event_details, created_at, deleted_at`

func scanLog(row interface{ Scan(...any) error }) (*models.ModerationLog, error) {
	var l models.ModerationLog
	err := row.Scan(&l.ID, &l.ActorMemberID, &l.RelatedActionID, &l.RelatedAppealID,
		&l.RelatedReportID, &l.EventType, &l.EventDetails, &l.CreatedAt, &l.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create appends a log entry only when the related action is still live;
// the EXISTS predicate keeps the check and the insert atomic. Returns
// false when the action is missing or soft-deleted.
func (r *ModerationLogRepository) Create(ctx context.Context, l *models.ModerationLog) (bool, error) {
	l.ID = uuid.NewString()
	err := r.DB.QueryRow(ctx,
		`INSERT INTO moderation_logs(id, actor_member_id, related_action_id, related_appeal_id,
		     related_report_id, event_type, event_details)
         SELECT $1, $2, $3, $4, $5, $6, $7
         WHERE EXISTS (SELECT 1 FROM moderation_actions WHERE id=$3 AND deleted_at IS NULL)
         RETURNING created_at`,
		l.ID, l.ActorMemberID, l.RelatedActionID, l.RelatedAppealID,
		l.RelatedReportID, l.EventType, l.EventDetails,
	).Scan(&l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *ModerationLogRepository) Get(ctx context.Context, id string) (*models.ModerationLog, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+logColumns+` FROM moderation_logs WHERE id=$1 AND deleted_at IS NULL`, id)
	return scanLog(row)
}

// ListByAction returns the audit trail for one action, oldest first.
func (r *ModerationLogRepository) ListByAction(ctx context.Context, actionID string) ([]*models.ModerationLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+logColumns+` FROM moderation_logs
         WHERE related_action_id=$1 AND deleted_at IS NULL
         ORDER BY created_at ASC`, actionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.ModerationLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ListCreatedSince returns entries created after the cutoff, including
// soft-deleted ones: the archive export is an audit surface.
func (r *ModerationLogRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*models.ModerationLog, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+logColumns+` FROM moderation_logs
         WHERE created_at > $1 ORDER BY created_at ASC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.ModerationLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// UpdateDetails writes event_details, the only mutable field.
func (r *ModerationLogRepository) UpdateDetails(ctx context.Context, id string, details *string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE moderation_logs SET event_details=$1 WHERE id=$2 AND deleted_at IS NULL`,
		details, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SoftDelete marks the entry deleted; the row is retained for compliance.
func (r *ModerationLogRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE moderation_logs SET deleted_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
