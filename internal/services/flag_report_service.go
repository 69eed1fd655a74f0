package services

import (
	"context"
	"errors"

	"board-backend/internal/apperr"
	"board-backend/internal/middleware"
	"board-backend/internal/models"

	"github.com/jackc/pgx/v5"
)

type FlagReportRepo interface {
	Create(ctx context.Context, f *models.FlagReport) error
	Get(ctx context.Context, id string) (*models.FlagReport, error)
	List(ctx context.Context, status models.ReportStatus, limit, offset int) ([]*models.FlagReport, error)
	UpdateStatus(ctx context.Context, id string, status models.ReportStatus) (bool, error)
	SoftDelete(ctx context.Context, id string) (bool, error)
}

type FlagReportService struct {
	Reports FlagReportRepo
	Targets TargetChecker
}

func NewFlagReportService(reports FlagReportRepo, targets TargetChecker) *FlagReportService {
	return &FlagReportService{Reports: reports, Targets: targets}
}

// Create files a flag report against a live target. Any member may file.
func (s *FlagReportService) Create(ctx context.Context, actor *middleware.AuthContext, req *models.CreateFlagReportRequest) (*models.FlagReport, error) {
	if !req.TargetType.Valid() {
		return nil, apperr.Validation("unknown target_type %q", req.TargetType)
	}
	if req.TargetID == "" {
		return nil, apperr.Validation("target_id is required")
	}
	if req.Reason == "" {
		return nil, apperr.Validation("reason is required")
	}

	exists, err := s.Targets.TargetExists(ctx, req.TargetType, req.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("report target not found")
	}

	report := &models.FlagReport{
		ReporterMemberID: actor.MemberID,
		TargetType:       req.TargetType,
		TargetID:         req.TargetID,
		Reason:           req.Reason,
	}
	if err := s.Reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Get returns a report. Reports expose reporter identity, so reading is
// restricted to the reporter themselves and moderators.
func (s *FlagReportService) Get(ctx context.Context, actor *middleware.AuthContext, id string) (*models.FlagReport, error) {
	report, err := s.Reports.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("flag report not found")
		}
		return nil, err
	}
	if report.ReporterMemberID != actor.MemberID && !actor.Role.CanModerate() {
		return nil, apperr.Forbidden("moderator role required")
	}
	return report, nil
}

func (s *FlagReportService) List(ctx context.Context, actor *middleware.AuthContext, status models.ReportStatus, limit, offset int) ([]*models.FlagReport, error) {
	if !actor.Role.CanModerate() {
		return nil, apperr.Forbidden("moderator role required")
	}
	if status != "" && !status.Valid() {
		return nil, apperr.Validation("unknown status %q", status)
	}
	return s.Reports.List(ctx, status, limit, offset)
}

// UpdateStatus moves a report through triage.
func (s *FlagReportService) UpdateStatus(ctx context.Context, actor *middleware.AuthContext, id string, req *models.UpdateFlagReportStatusRequest) (*models.FlagReport, error) {
	if !actor.Role.CanModerate() {
		return nil, apperr.Forbidden("moderator role required")
	}
	if !req.Status.Valid() {
		return nil, apperr.Validation("unknown status %q", req.Status)
	}

	ok, err := s.Reports.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("flag report not found")
	}
	return s.Get(ctx, actor, id)
}

func (s *FlagReportService) Delete(ctx context.Context, actor *middleware.AuthContext, id string) error {
	if !actor.Role.CanModerate() {
		return apperr.Forbidden("moderator role required")
	}
	ok, err := s.Reports.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("flag report not found")
	}
	return nil
}
