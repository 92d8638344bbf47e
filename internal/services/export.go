package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

// ExportScope selects which sub-collections go into the document. The zero
// value (FullExport) includes everything.
type ExportScope struct {
	Videos bool
	Ideas  bool
	Streak bool
}

func FullExport() ExportScope {
	return ExportScope{Videos: true, Ideas: true, Streak: true}
}

// ExportDocument is the user-facing download shape. Key names are part of
// the contract; do not rename them.
type ExportDocument struct {
	ExportedAt  string `json:"exportedAt"`
	AccountName string `json:"accountName"`
	AccountType string `json:"accountType"`

	// Scope-selected sections. In scope but empty serializes as an empty
	// list or zero object, never as an error; out of scope stays null.
	Videos         []*ExportVideo  `json:"videos"`
	MetricsSummary *MetricsSummary `json:"metricsSummary"`
	Ideas          []*types.Idea   `json:"ideas"`
	Streak         *types.Streak   `json:"streak"`
}

type ExportVideo struct {
	*types.Video
	Metrics []*types.VideoMetric `json:"metrics"`
	Note    *types.VideoNote     `json:"note,omitempty"`
}

// MetricsSummary aggregates the latest snapshot of every posted video with
// at least one metric. Averages are per such video.
type MetricsSummary struct {
	VideoCount     int     `json:"videoCount"`
	TotalViews     int64   `json:"totalViews"`
	TotalLikes     int64   `json:"totalLikes"`
	TotalComments  int64   `json:"totalComments"`
	TotalShares    int64   `json:"totalShares"`
	AvgViews       float64 `json:"avgViews"`
	AvgLikes       float64 `json:"avgLikes"`
	AvgComments    float64 `json:"avgComments"`
	AvgShares      float64 `json:"avgShares"`
	EngagementRate float64 `json:"engagementRate"`
}

type ExportService interface {
	// ExportAccount is a pure read: it never mutates and it tolerates any
	// sub-collection being empty.
	ExportAccount(ctx context.Context, accountID uuid.UUID, scope ExportScope) (*ExportDocument, error)
}

type exportService struct {
	db              *gorm.DB
	log             *logger.Logger
	now             clock
	accountRepo     repos.AccountRepo
	videoRepo       repos.VideoRepo
	videoMetricRepo repos.VideoMetricRepo
	videoNoteRepo   repos.VideoNoteRepo
	ideaRepo        repos.IdeaRepo
	streakRepo      repos.StreakRepo
}

func NewExportService(
	db *gorm.DB,
	log *logger.Logger,
	accountRepo repos.AccountRepo,
	videoRepo repos.VideoRepo,
	videoMetricRepo repos.VideoMetricRepo,
	videoNoteRepo repos.VideoNoteRepo,
	ideaRepo repos.IdeaRepo,
	streakRepo repos.StreakRepo,
) ExportService {
	serviceLog := log.With("service", "ExportService")
	return &exportService{
		db:              db,
		log:             serviceLog,
		now:             utcNow,
		accountRepo:     accountRepo,
		videoRepo:       videoRepo,
		videoMetricRepo: videoMetricRepo,
		videoNoteRepo:   videoNoteRepo,
		ideaRepo:        ideaRepo,
		streakRepo:      streakRepo,
	}
}

func (s *exportService) ExportAccount(ctx context.Context, accountID uuid.UUID, scope ExportScope) (*ExportDocument, error) {
	account, err := s.accountRepo.GetByID(ctx, nil, accountID)
	if err != nil {
		return nil, notFoundOr(err, "account %s not found", accountID)
	}

	doc := &ExportDocument{
		ExportedAt:  s.now().Format("2006-01-02T15:04:05Z07:00"),
		AccountName: account.Name,
		AccountType: account.Niche,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	if scope.Videos {
		group.Go(func() error {
			videos, summary, err := s.collectVideos(groupCtx, accountID)
			if err != nil {
				return err
			}
			doc.Videos = videos
			doc.MetricsSummary = summary
			return nil
		})
	}
	if scope.Ideas {
		group.Go(func() error {
			ideas, err := s.ideaRepo.List(groupCtx, nil, repos.IdeaFilter{AccountID: accountID})
			if err != nil {
				return err
			}
			if ideas == nil {
				ideas = []*types.Idea{}
			}
			doc.Ideas = ideas
			return nil
		})
	}
	if scope.Streak {
		group.Go(func() error {
			streak, err := s.streakRepo.GetByAccountID(groupCtx, nil, accountID)
			if err != nil {
				if isNotFound(err) {
					doc.Streak = &types.Streak{AccountID: accountID}
					return nil
				}
				return err
			}
			doc.Streak = streak
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		s.log.Error("Account export failed", "account_id", accountID, "error", err)
		return nil, apierr.Persistence(err)
	}
	return doc, nil
}

func (s *exportService) collectVideos(ctx context.Context, accountID uuid.UUID) ([]*ExportVideo, *MetricsSummary, error) {
	videos, err := s.videoRepo.List(ctx, nil, repos.VideoFilter{AccountID: accountID})
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uuid.UUID, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}

	metrics, err := s.videoMetricRepo.ListByVideoIDs(ctx, nil, ids)
	if err != nil {
		return nil, nil, err
	}
	notes, err := s.videoNoteRepo.GetByVideoIDs(ctx, nil, ids)
	if err != nil {
		return nil, nil, err
	}

	metricsByVideo := make(map[uuid.UUID][]*types.VideoMetric, len(videos))
	for _, m := range metrics {
		metricsByVideo[m.VideoID] = append(metricsByVideo[m.VideoID], m)
	}
	noteByVideo := make(map[uuid.UUID]*types.VideoNote, len(notes))
	for _, n := range notes {
		noteByVideo[n.VideoID] = n
	}

	exported := make([]*ExportVideo, 0, len(videos))
	for _, v := range videos {
		history := metricsByVideo[v.ID]
		if history == nil {
			history = []*types.VideoMetric{}
		}
		exported = append(exported, &ExportVideo{
			Video:   v,
			Metrics: history,
			Note:    noteByVideo[v.ID],
		})
	}

	return exported, summarizeMetrics(videos, metricsByVideo), nil
}

// summarizeMetrics folds the latest snapshot of every posted video that has
// metric history. ListByVideoIDs returns rows recorded_at ascending, so the
// last element of each slice is the latest.
func summarizeMetrics(videos []*types.Video, metricsByVideo map[uuid.UUID][]*types.VideoMetric) *MetricsSummary {
	summary := &MetricsSummary{}
	for _, v := range videos {
		if v.Status != types.VideoStatusPosted {
			continue
		}
		history := metricsByVideo[v.ID]
		if len(history) == 0 {
			continue
		}
		latest := history[len(history)-1]
		summary.VideoCount++
		summary.TotalViews += latest.Views
		summary.TotalLikes += latest.Likes
		summary.TotalComments += latest.Comments
		summary.TotalShares += latest.Shares
	}
	if summary.VideoCount > 0 {
		n := float64(summary.VideoCount)
		summary.AvgViews = float64(summary.TotalViews) / n
		summary.AvgLikes = float64(summary.TotalLikes) / n
		summary.AvgComments = float64(summary.TotalComments) / n
		summary.AvgShares = float64(summary.TotalShares) / n
	}
	if summary.TotalViews > 0 {
		summary.EngagementRate = float64(summary.TotalLikes+summary.TotalComments+summary.TotalShares) / float64(summary.TotalViews)
	}
	return summary
}
