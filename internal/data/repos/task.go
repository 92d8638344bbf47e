package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type TaskFilter struct {
	AccountID uuid.UUID
	Type      string
	Status    string
	VideoID   *uuid.UUID
}

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Task, error)
	List(ctx context.Context, tx *gorm.DB, filter TaskFilter) ([]*types.Task, error)
	ListPendingByType(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, taskType string) ([]*types.Task, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error
	DeleteByVideoIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	repoLog := baseLog.With("repo", "TaskRepo")
	return &taskRepo{db: db, log: repoLog}
}

func (r *taskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(tasks) == 0 {
		return []*types.Task{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.Task
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *taskRepo) List(ctx context.Context, tx *gorm.DB, filter TaskFilter) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Model(&types.Task{})
	if filter.AccountID != uuid.Nil {
		q = q.Where("account_id = ?", filter.AccountID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.VideoID != nil {
		q = q.Where("video_id = ?", *filter.VideoID)
	}

	var results []*types.Task
	if err := q.Order("priority DESC, due_at ASC, created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListPendingByType backs the generation pipeline's de-duplication query,
// served by idx_task_account_type_status.
func (r *taskRepo) ListPendingByType(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, taskType string) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Where("account_id = ? AND type = ? AND status <> ?",
			accountID, taskType, types.TaskStatusCompleted).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *taskRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *taskRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Task{}).Error
}

func (r *taskRepo) DeleteByAccountID(ctx context.Context, tx *gorm.DB, accountID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&types.Task{}).Error
}

func (r *taskRepo) DeleteByVideoIDs(ctx context.Context, tx *gorm.DB, videoIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(videoIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("video_id IN ?", videoIDs).
		Delete(&types.Task{}).Error
}
