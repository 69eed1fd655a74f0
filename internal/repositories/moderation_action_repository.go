package repositories

import (
	"context"

	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ModerationActionRepository struct {
	DB *pgxpool.Pool
}

func NewModerationActionRepository(db *pgxpool.Pool) *ModerationActionRepository {
	return &ModerationActionRepository{DB: db}
}

const actionColumns = `id, moderator_id, target_type, target_id, action_type, action_reason,
	 details, effective_from, effective_until, status, appeal_id, created_at, updated_at, deleted_at`

func scanAction(row interface{ Scan(...any) error }) (*models.ModerationAction, error) {
	var a models.ModerationAction
	err := row.Scan(&a.ID, &a.ModeratorID, &a.TargetType, &a.TargetID, &a.ActionType,
		&a.ActionReason, &a.Details, &a.EffectiveFrom, &a.EffectiveUntil,
		&a.Status, &a.AppealID, &a.CreatedAt, &a.UpdatedAt, &a.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ModerationActionRepository) Create(ctx context.Context, a *models.ModerationAction) error {
	a.ID = uuid.NewString()
	if a.Status == "" {
		a.Status = models.ActionStatusActive
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO moderation_actions(id, moderator_id, target_type, target_id, action_type,
		     action_reason, details, effective_from, effective_until, status)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
         RETURNING created_at, updated_at`,
		a.ID, a.ModeratorID, a.TargetType, a.TargetID, a.ActionType,
		a.ActionReason, a.Details, a.EffectiveFrom, a.EffectiveUntil, a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *ModerationActionRepository) Get(ctx context.Context, id string) (*models.ModerationAction, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+actionColumns+` FROM moderation_actions WHERE id=$1 AND deleted_at IS NULL`, id)
	return scanAction(row)
}

func (r *ModerationActionRepository) List(ctx context.Context, limit, offset int) ([]*models.ModerationAction, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+actionColumns+` FROM moderation_actions WHERE deleted_at IS NULL
         ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*models.ModerationAction
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// Update writes the mutable action fields; returns false if the row is gone.
func (r *ModerationActionRepository) Update(ctx context.Context, a *models.ModerationAction) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE moderation_actions
         SET action_type=$1, action_reason=$2, details=$3, effective_from=$4,
             effective_until=$5, status=$6, updated_at=NOW()
         WHERE id=$7 AND deleted_at IS NULL`,
		a.ActionType, a.ActionReason, a.Details, a.EffectiveFrom,
		a.EffectiveUntil, a.Status, a.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SoftDelete marks the action deleted; returns false if already deleted or missing.
func (r *ModerationActionRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE moderation_actions SET deleted_at=NOW(), updated_at=NOW()
         WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
