package repositories

import (
	"context"

	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppealRepository struct {
	DB *pgxpool.Pool
}

func NewAppealRepository(db *pgxpool.Pool) *AppealRepository {
	return &AppealRepository{DB: db}
}

const appealColumns = `id, moderation_action_id, appellant_member_id, appeal_rationale,
	 status, resolution_notes, created_at, updated_at, deleted_at`

func scanAppeal(row interface{ Scan(...any) error }) (*models.Appeal, error) {
	var a models.Appeal
	err := row.Scan(&a.ID, &a.ModerationActionID, &a.AppellantMemberID, &a.AppealRationale,
		&a.Status, &a.ResolutionNotes, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the appeal and back-references it from the moderation
// action (appeal_id + status=appealed) in one transaction.
func (r *AppealRepository) Create(ctx context.Context, a *models.Appeal) error {
	a.ID = uuid.NewString()
	a.Status = models.AppealPending

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO appeals(id, moderation_action_id, appellant_member_id, appeal_rationale, status)
         VALUES($1, $2, $3, $4, $5)
         RETURNING created_at, updated_at`,
		a.ID, a.ModerationActionID, a.AppellantMemberID, a.AppealRationale, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE moderation_actions SET appeal_id=$1, status=$2, updated_at=NOW()
         WHERE id=$3 AND deleted_at IS NULL`,
		a.ID, models.ActionStatusAppealed, a.ModerationActionID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *AppealRepository) Get(ctx context.Context, id string) (*models.Appeal, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+appealColumns+` FROM appeals WHERE id=$1 AND deleted_at IS NULL`, id)
	return scanAppeal(row)
}

// GetLiveByActionID returns the non-deleted appeal for an action, if any.
func (r *AppealRepository) GetLiveByActionID(ctx context.Context, actionID string) (*models.Appeal, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+appealColumns+` FROM appeals
         WHERE moderation_action_id=$1 AND deleted_at IS NULL`, actionID)
	return scanAppeal(row)
}

func (r *AppealRepository) List(ctx context.Context, limit, offset int) ([]*models.Appeal, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+appealColumns+` FROM appeals WHERE deleted_at IS NULL
         ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appeals []*models.Appeal
	for rows.Next() {
		a, err := scanAppeal(rows)
		if err != nil {
			return nil, err
		}
		appeals = append(appeals, a)
	}
	return appeals, rows.Err()
}

// UpdateRationale amends the rationale only while the appeal is
// non-terminal; the status predicate makes the check and the write one
// atomic statement.
func (r *AppealRepository) UpdateRationale(ctx context.Context, id, rationale string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE appeals SET appeal_rationale=$1, updated_at=NOW()
         WHERE id=$2 AND deleted_at IS NULL AND status IN ($3, $4)`,
		rationale, id, models.AppealPending, models.AppealUnderReview)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Transition moves the appeal from one status to another with a
// conditional UPDATE, and appends the paired audit log entry in the same
// transaction so neither can occur without the other. Racing transitions
// see zero rows updated and report false.
func (r *AppealRepository) Transition(ctx context.Context, id string, from, to models.AppealStatus,
	resolutionNotes *string, logEntry *models.ModerationLog) (bool, error) {

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE appeals SET status=$1, resolution_notes=COALESCE($2, resolution_notes), updated_at=NOW()
         WHERE id=$3 AND status=$4 AND deleted_at IS NULL`,
		to, resolutionNotes, id, from)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if logEntry != nil {
		logEntry.ID = uuid.NewString()
		err = tx.QueryRow(ctx,
			`INSERT INTO moderation_logs(id, actor_member_id, related_action_id, related_appeal_id,
			     related_report_id, event_type, event_details)
             VALUES($1, $2, $3, $4, $5, $6, $7)
             RETURNING created_at`,
			logEntry.ID, logEntry.ActorMemberID, logEntry.RelatedActionID, logEntry.RelatedAppealID,
			logEntry.RelatedReportID, logEntry.EventType, logEntry.EventDetails,
		).Scan(&logEntry.CreatedAt)
		if err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// SoftDelete marks the appeal deleted; returns false if already gone.
func (r *AppealRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE appeals SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}