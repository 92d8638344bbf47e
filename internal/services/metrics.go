package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type RecordAccountMetricInput struct {
	Platform       string     `json:"platform"`
	Followers      int64      `json:"followers"`
	Reach          *int64     `json:"reach"`
	Impressions    *int64     `json:"impressions"`
	ProfileViews   *int64     `json:"profile_views"`
	EngagementRate *float64   `json:"engagement_rate"`
	TotalViews     *int64     `json:"total_views"`
	TotalLikes     *int64     `json:"total_likes"`
	TotalComments  *int64     `json:"total_comments"`
	TotalShares    *int64     `json:"total_shares"`
	RecordedAt     *time.Time `json:"recorded_at"`
}

type RecordVideoMetricInput struct {
	Platform   string     `json:"platform"`
	Views      int64      `json:"views"`
	Likes      int64      `json:"likes"`
	Comments   int64      `json:"comments"`
	Shares     int64      `json:"shares"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// VideoTotals aggregates the latest snapshot of each video in an account.
// Computed on read; nothing here is stored.
type VideoTotals struct {
	Videos         int     `json:"videos"`
	Views          int64   `json:"views"`
	Likes          int64   `json:"likes"`
	Comments       int64   `json:"comments"`
	Shares         int64   `json:"shares"`
	EngagementRate float64 `json:"engagement_rate"`
}

type MetricsService interface {
	RecordAccountMetric(ctx context.Context, accountID uuid.UUID, input RecordAccountMetricInput) (*types.AccountMetric, error)
	AccountMetrics(ctx context.Context, accountID uuid.UUID, platform string) ([]*types.AccountMetric, error)
	LatestAccountMetric(ctx context.Context, accountID uuid.UUID, platform string) (*types.AccountMetric, error)
	// FollowerGrowth is latest minus previous snapshot for the platform;
	// zero when fewer than two snapshots exist.
	FollowerGrowth(ctx context.Context, accountID uuid.UUID, platform string) (int64, error)

	RecordVideoMetric(ctx context.Context, videoID uuid.UUID, input RecordVideoMetricInput) (*types.VideoMetric, error)
	VideoMetrics(ctx context.Context, videoID uuid.UUID) ([]*types.VideoMetric, error)
	LatestVideoMetric(ctx context.Context, videoID uuid.UUID) (*types.VideoMetric, error)
	AccountVideoTotals(ctx context.Context, accountID uuid.UUID) (*VideoTotals, error)
}

type metricsService struct {
	db            *gorm.DB
	log           *logger.Logger
	now           clock
	accMetricRepo repos.AccountMetricRepo
	vidMetricRepo repos.VideoMetricRepo
	videoRepo     repos.VideoRepo
}

func NewMetricsService(db *gorm.DB, log *logger.Logger, accMetricRepo repos.AccountMetricRepo, vidMetricRepo repos.VideoMetricRepo, videoRepo repos.VideoRepo) MetricsService {
	serviceLog := log.With("service", "MetricsService")
	return &metricsService{
		db:            db,
		log:           serviceLog,
		now:           utcNow,
		accMetricRepo: accMetricRepo,
		vidMetricRepo: vidMetricRepo,
		videoRepo:     videoRepo,
	}
}

func (s *metricsService) RecordAccountMetric(ctx context.Context, accountID uuid.UUID, input RecordAccountMetricInput) (*types.AccountMetric, error) {
	if accountID == uuid.Nil {
		return nil, apierr.Validation("account id is required")
	}
	if input.Platform == "" {
		return nil, apierr.Validation("platform is required")
	}
	if input.Followers < 0 {
		return nil, apierr.Validation("followers cannot be negative")
	}

	now := s.now()
	recordedAt := now
	if input.RecordedAt != nil {
		recordedAt = input.RecordedAt.UTC()
	}

	metric := &types.AccountMetric{
		ID:             uuid.New(),
		AccountID:      accountID,
		Platform:       input.Platform,
		Followers:      input.Followers,
		Reach:          input.Reach,
		Impressions:    input.Impressions,
		ProfileViews:   input.ProfileViews,
		EngagementRate: input.EngagementRate,
		TotalViews:     input.TotalViews,
		TotalLikes:     input.TotalLikes,
		TotalComments:  input.TotalComments,
		TotalShares:    input.TotalShares,
		RecordedAt:     recordedAt,
		CreatedAt:      now,
	}
	if _, err := s.accMetricRepo.Create(ctx, nil, []*types.AccountMetric{metric}); err != nil {
		s.log.Error("Account metric append failed", "error", err)
		return nil, apierr.Persistence(err)
	}
	return metric, nil
}

func (s *metricsService) AccountMetrics(ctx context.Context, accountID uuid.UUID, platform string) ([]*types.AccountMetric, error) {
	metrics, err := s.accMetricRepo.ListByAccount(ctx, nil, accountID, platform)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return metrics, nil
}

func (s *metricsService) LatestAccountMetric(ctx context.Context, accountID uuid.UUID, platform string) (*types.AccountMetric, error) {
	if platform == "" {
		return nil, apierr.Validation("platform is required")
	}
	latest, err := s.accMetricRepo.LatestByAccountPlatform(ctx, nil, accountID, platform, 1)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	if len(latest) == 0 {
		return nil, apierr.NotFound("no metrics recorded for platform %q", platform)
	}
	return latest[0], nil
}

func (s *metricsService) FollowerGrowth(ctx context.Context, accountID uuid.UUID, platform string) (int64, error) {
	if platform == "" {
		return 0, apierr.Validation("platform is required")
	}
	latest, err := s.accMetricRepo.LatestByAccountPlatform(ctx, nil, accountID, platform, 2)
	if err != nil {
		return 0, apierr.Persistence(err)
	}
	if len(latest) < 2 {
		return 0, nil
	}
	return latest[0].Followers - latest[1].Followers, nil
}

func (s *metricsService) RecordVideoMetric(ctx context.Context, videoID uuid.UUID, input RecordVideoMetricInput) (*types.VideoMetric, error) {
	if videoID == uuid.Nil {
		return nil, apierr.Validation("video id is required")
	}
	if input.Platform == "" {
		return nil, apierr.Validation("platform is required")
	}
	if input.Views < 0 || input.Likes < 0 || input.Comments < 0 || input.Shares < 0 {
		return nil, apierr.Validation("metric counts cannot be negative")
	}
	if _, err := s.videoRepo.GetByID(ctx, nil, videoID); err != nil {
		return nil, notFoundOr(err, "video %s not found", videoID)
	}

	now := s.now()
	recordedAt := now
	if input.RecordedAt != nil {
		recordedAt = input.RecordedAt.UTC()
	}

	metric := &types.VideoMetric{
		ID:         uuid.New(),
		VideoID:    videoID,
		Platform:   input.Platform,
		Views:      input.Views,
		Likes:      input.Likes,
		Comments:   input.Comments,
		Shares:     input.Shares,
		RecordedAt: recordedAt,
		CreatedAt:  now,
	}
	if _, err := s.vidMetricRepo.Create(ctx, nil, []*types.VideoMetric{metric}); err != nil {
		s.log.Error("Video metric append failed", "error", err)
		return nil, apierr.Persistence(err)
	}
	return metric, nil
}

func (s *metricsService) VideoMetrics(ctx context.Context, videoID uuid.UUID) ([]*types.VideoMetric, error) {
	metrics, err := s.vidMetricRepo.ListByVideo(ctx, nil, videoID)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return metrics, nil
}

func (s *metricsService) LatestVideoMetric(ctx context.Context, videoID uuid.UUID) (*types.VideoMetric, error) {
	metric, err := s.vidMetricRepo.LatestByVideo(ctx, nil, videoID)
	if err != nil {
		return nil, notFoundOr(err, "no metrics recorded for video %s", videoID)
	}
	return metric, nil
}

func (s *metricsService) AccountVideoTotals(ctx context.Context, accountID uuid.UUID) (*VideoTotals, error) {
	videoIDs, err := s.videoRepo.IDsByAccount(ctx, nil, accountID)
	if err != nil {
		return nil, apierr.Persistence(err)
	}

	totals := &VideoTotals{}
	if len(videoIDs) == 0 {
		return totals, nil
	}

	series, err := s.vidMetricRepo.ListByVideoIDs(ctx, nil, videoIDs)
	if err != nil {
		return nil, apierr.Persistence(err)
	}

	// The series is recorded_at ascending, so the last snapshot seen per
	// video wins.
	latest := map[uuid.UUID]*types.VideoMetric{}
	for _, m := range series {
		latest[m.VideoID] = m
	}

	for _, m := range latest {
		totals.Videos++
		totals.Views += m.Views
		totals.Likes += m.Likes
		totals.Comments += m.Comments
		totals.Shares += m.Shares
	}
	if totals.Views > 0 {
		totals.EngagementRate = float64(totals.Likes+totals.Comments+totals.Shares) / float64(totals.Views)
	}
	return totals, nil
}
