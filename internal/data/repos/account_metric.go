package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

// AccountMetricRepo is append-only like VideoMetricRepo.
type AccountMetricRepo interface {
	Create(ctx context.Context, tx *gorm.DB, metrics []*types.AccountMetric) ([]*types.AccountMetric, error)
	ListByAccount(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, platform string) ([]*types.AccountMetric, error)
	LatestByAccountPlatform(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, platform string, limit int) ([]*types.AccountMetric, error)
	DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error
}

type accountMetricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountMetricRepo(db *gorm.DB, baseLog *logger.Logger) AccountMetricRepo {
	repoLog := baseLog.With("repo", "AccountMetricRepo")
	return &accountMetricRepo{db: db, log: repoLog}
}

func (r *accountMetricRepo) Create(ctx context.Context, tx *gorm.DB, metrics []*types.AccountMetric) ([]*types.AccountMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(metrics) == 0 {
		return []*types.AccountMetric{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *accountMetricRepo) ListByAccount(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, platform string) ([]*types.AccountMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Where("account_id = ?", accountID)
	if platform != "" {
		q = q.Where("platform = ?", platform)
	}

	var results []*types.AccountMetric
	if err := q.Order("recorded_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// LatestByAccountPlatform returns up to limit snapshots newest-first, which
// gives the metrics service the (latest, previous) pair for delta reads.
func (r *accountMetricRepo) LatestByAccountPlatform(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, platform string, limit int) ([]*types.AccountMetric, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 1
	}

	var results []*types.AccountMetric
	if err := transaction.WithContext(ctx).
		Where("account_id = ? AND platform = ?", accountID, platform).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *accountMetricRepo) DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&types.AccountMetric{}).Error
}
