package services

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type TrendReportService interface {
	Create(ctx context.Context, accountID uuid.UUID, provider string, content json.RawMessage) (*types.TrendReport, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.TrendReport, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*types.TrendReport, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type trendReportService struct {
	db         *gorm.DB
	log        *logger.Logger
	now        clock
	reportRepo repos.TrendReportRepo
}

func NewTrendReportService(db *gorm.DB, log *logger.Logger, reportRepo repos.TrendReportRepo) TrendReportService {
	serviceLog := log.With("service", "TrendReportService")
	return &trendReportService{db: db, log: serviceLog, now: utcNow, reportRepo: reportRepo}
}

func (s *trendReportService) Create(ctx context.Context, accountID uuid.UUID, provider string, content json.RawMessage) (*types.TrendReport, error) {
	if accountID == uuid.Nil {
		return nil, apierr.Validation("account id is required")
	}
	if provider == "" {
		return nil, apierr.Validation("provider is required")
	}
	if len(content) == 0 {
		return nil, apierr.Validation("report content is required")
	}
	if !json.Valid(content) {
		return nil, apierr.Validation("report content must be valid JSON")
	}

	now := s.now()
	report := &types.TrendReport{
		ID:          uuid.New(),
		AccountID:   accountID,
		Provider:    provider,
		Content:     datatypes.JSON(content),
		GeneratedAt: now,
		CreatedAt:   now,
	}
	if _, err := s.reportRepo.Create(ctx, nil, []*types.TrendReport{report}); err != nil {
		s.log.Error("Trend report creation failed", "error", err)
		return nil, apierr.Persistence(err)
	}
	return report, nil
}

func (s *trendReportService) GetByID(ctx context.Context, id uuid.UUID) (*types.TrendReport, error) {
	report, err := s.reportRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, "trend report %s not found", id)
	}
	return report, nil
}

func (s *trendReportService) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*types.TrendReport, error) {
	reports, err := s.reportRepo.ListByAccount(ctx, nil, accountID)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return reports, nil
}

func (s *trendReportService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.reportRepo.GetByID(ctx, nil, id); err != nil {
		return notFoundOr(err, "trend report %s not found", id)
	}
	if err := s.reportRepo.DeleteByID(ctx, nil, id); err != nil {
		return apierr.Persistence(err)
	}
	return nil
}
