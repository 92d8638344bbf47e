package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

// metricsStaleDays is the window after which a posted video's numbers are
// considered due for a refresh.
const metricsStaleDays = 7

const metricsUpdatePriority = 4

// TaskGenService scans an account's posted videos and synthesizes
// metrics_update reminder tasks for the ones whose metric history has gone
// stale. Invoked on page load and after metric submission; repeated runs
// without intervening state change create nothing new.
type TaskGenService interface {
	GenerateMetricsUpdateTasks(ctx context.Context, accountID uuid.UUID) (int, error)
}

type taskGenService struct {
	db         *gorm.DB
	log        *logger.Logger
	now        clock
	videoRepo  repos.VideoRepo
	metricRepo repos.VideoMetricRepo
	taskRepo   repos.TaskRepo
}

func NewTaskGenService(db *gorm.DB, log *logger.Logger, videoRepo repos.VideoRepo, metricRepo repos.VideoMetricRepo, taskRepo repos.TaskRepo) TaskGenService {
	serviceLog := log.With("service", "TaskGenService")
	return &taskGenService{
		db:         db,
		log:        serviceLog,
		now:        utcNow,
		videoRepo:  videoRepo,
		metricRepo: metricRepo,
		taskRepo:   taskRepo,
	}
}

func (s *taskGenService) GenerateMetricsUpdateTasks(ctx context.Context, accountID uuid.UUID) (int, error) {
	if accountID == uuid.Nil {
		return 0, apierr.Validation("account id is required")
	}

	now := s.now()
	cutoff := now.AddDate(0, 0, -metricsStaleDays)

	// Only videos posted at least the full staleness window ago qualify;
	// fresher posts are expected to have fresh numbers anyway.
	videos, err := s.videoRepo.ListPostedBefore(ctx, nil, accountID, cutoff)
	if err != nil {
		return 0, apierr.Persistence(err)
	}
	if len(videos) == 0 {
		return 0, nil
	}

	// De-duplication set is re-queried on every run rather than kept as a
	// watermark, which is what keeps the operation idempotent.
	pending, err := s.taskRepo.ListPendingByType(ctx, nil, accountID, types.TaskTypeMetricsUpdate)
	if err != nil {
		return 0, apierr.Persistence(err)
	}
	covered := map[uuid.UUID]struct{}{}
	for _, t := range pending {
		if t.VideoID != nil {
			covered[*t.VideoID] = struct{}{}
		}
	}

	dueAt := now.AddDate(0, 0, 1)
	var newTasks []*types.Task
	for _, v := range videos {
		if _, ok := covered[v.ID]; ok {
			continue
		}

		needsUpdate := false
		latest, err := s.metricRepo.LatestByVideo(ctx, nil, v.ID)
		switch {
		case err != nil && isNotFound(err):
			needsUpdate = true
		case err != nil:
			return 0, apierr.Persistence(err)
		default:
			needsUpdate = latest.RecordedAt.Before(cutoff)
		}
		if !needsUpdate {
			continue
		}

		videoID := v.ID
		due := dueAt
		newTasks = append(newTasks, &types.Task{
			ID:          uuid.New(),
			AccountID:   accountID,
			Title:       fmt.Sprintf("Update metrics for %q", v.Title),
			Description: "Fresh numbers keep your analytics honest.",
			Type:        types.TaskTypeMetricsUpdate,
			Priority:    metricsUpdatePriority,
			Status:      types.TaskStatusPending,
			DueAt:       &due,
			VideoID:     &videoID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if len(newTasks) == 0 {
		return 0, nil
	}
	if _, err := s.taskRepo.Create(ctx, nil, newTasks); err != nil {
		s.log.Error("Task generation insert failed", "account_id", accountID, "error", err)
		return 0, apierr.Persistence(err)
	}

	s.log.Info("Metrics update tasks generated", "account_id", accountID, "count", len(newTasks))
	return len(newTasks), nil
}
