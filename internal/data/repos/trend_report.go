package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type TrendReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reports []*types.TrendReport) ([]*types.TrendReport, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TrendReport, error)
	ListByAccount(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) ([]*types.TrendReport, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error
}

type trendReportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrendReportRepo(db *gorm.DB, baseLog *logger.Logger) TrendReportRepo {
	repoLog := baseLog.With("repo", "TrendReportRepo")
	return &trendReportRepo{db: db, log: repoLog}
}

func (r *trendReportRepo) Create(ctx context.Context, tx *gorm.DB, reports []*types.TrendReport) ([]*types.TrendReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(reports) == 0 {
		return []*types.TrendReport{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *trendReportRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.TrendReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.TrendReport
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *trendReportRepo) ListByAccount(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) ([]*types.TrendReport, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TrendReport
	if err := transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("generated_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *trendReportRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.TrendReport{}).Error
}

func (r *trendReportRepo) DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&types.TrendReport{}).Error
}
