package repositories

import (
	"context"

	"board-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlagReportRepository struct {
	DB *pgxpool.Pool
}

func NewFlagReportRepository(db *pgxpool.Pool) *FlagReportRepository {
	return &FlagReportRepository{DB: db}
}

const reportColumns = `id, reporter_member_id, target_type, target_id, reason, status,
	 created_at, updated_at, deleted_at`

func scanReport(row interface{ Scan(...any) error }) (*models.FlagReport, error) {
	var f models.FlagReport
	err := row.Scan(&f.ID, &f.ReporterMemberID, &f.TargetType, &f.TargetID, &f.Reason,
		&f.Status, &f.CreatedAt, &f.UpdatedAt, &f.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FlagReportRepository) Create(ctx context.Context, f *models.FlagReport) error {
	f.ID = uuid.NewString()
	f.Status = models.ReportOpen
	return r.DB.QueryRow(ctx,
		`INSERT INTO flag_reports(id, reporter_member_id, target_type, target_id, reason, status)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING created_at, updated_at`,
		f.ID, f.ReporterMemberID, f.TargetType, f.TargetID, f.Reason, f.Status,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
}

func (r *FlagReportRepository) Get(ctx context.Context, id string) (*models.FlagReport, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM flag_reports WHERE id=$1 AND deleted_at IS NULL`, id)
	return scanReport(row)
}

func (r *FlagReportRepository) List(ctx context.Context, status models.ReportStatus, limit, offset int) ([]*models.FlagReport, error) {
	query := `SELECT ` + reportColumns + ` FROM flag_reports WHERE deleted_at IS NULL`
	args := []any{}
	if status != "" {
		query += ` AND status=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, status, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.FlagReport
	for rows.Next() {
		f, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, f)
	}
	return reports, rows.Err()
}

func (r *FlagReportRepository) UpdateStatus(ctx context.Context, id string, status models.ReportStatus) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE flag_reports SET status=$1, updated_at=NOW() WHERE id=$2 AND deleted_at IS NULL`,
		status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FlagReportRepository) SoftDelete(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE flag_reports SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
