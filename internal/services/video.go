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

type CreateVideoInput struct {
	AccountID   uuid.UUID  `json:"account_id"`
	Title       string     `json:"title"`
	Script      string     `json:"script"`
	Caption     string     `json:"caption"`
	Hook        string     `json:"hook"`
	Hashtags    []string   `json:"hashtags"`
	DurationSec int        `json:"duration_sec"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	PostedAt    *time.Time `json:"posted_at"`
}

type UpdateVideoInput struct {
	Title       *string    `json:"title"`
	Script      *string    `json:"script"`
	Caption     *string    `json:"caption"`
	Hook        *string    `json:"hook"`
	Hashtags    *[]string  `json:"hashtags"`
	DurationSec *int       `json:"duration_sec"`
	Status      *string    `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	PostedAt    *time.Time `json:"posted_at"`
}

type VideoService interface {
	Create(ctx context.Context, input CreateVideoInput) (*types.Video, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Video, error)
	List(ctx context.Context, filter repos.VideoFilter) ([]*types.Video, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateVideoInput) (*types.Video, error)
	// Delete removes the video together with its metric history, its note
	// and any tasks that reference it, in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

type videoService struct {
	db         *gorm.DB
	log        *logger.Logger
	now        clock
	videoRepo  repos.VideoRepo
	metricRepo repos.VideoMetricRepo
	noteRepo   repos.VideoNoteRepo
	taskRepo   repos.TaskRepo
}

func NewVideoService(db *gorm.DB, log *logger.Logger, videoRepo repos.VideoRepo, metricRepo repos.VideoMetricRepo, noteRepo repos.VideoNoteRepo, taskRepo repos.TaskRepo) VideoService {
	serviceLog := log.With("service", "VideoService")
	return &videoService{
		db:         db,
		log:        serviceLog,
		now:        utcNow,
		videoRepo:  videoRepo,
		metricRepo: metricRepo,
		noteRepo:   noteRepo,
		taskRepo:   taskRepo,
	}
}

func (s *videoService) Create(ctx context.Context, input CreateVideoInput) (*types.Video, error) {
	if input.AccountID == uuid.Nil {
		return nil, apierr.Validation("account id is required")
	}
	if input.Title == "" {
		return nil, apierr.Validation("video title is required")
	}
	if input.DurationSec <= 0 {
		return nil, apierr.Validation("duration must be a positive number of seconds")
	}
	status := input.Status
	if status == "" {
		status = types.VideoStatusPlanned
	}
	if !types.ValidVideoStatus(status) {
		return nil, apierr.Validation("unknown video status %q", status)
	}

	now := s.now()
	video := &types.Video{
		ID:          uuid.New(),
		AccountID:   input.AccountID,
		Title:       input.Title,
		Script:      input.Script,
		Caption:     input.Caption,
		Hook:        input.Hook,
		Hashtags:    jsonList(input.Hashtags),
		DurationSec: input.DurationSec,
		Status:      status,
		ScheduledAt: input.ScheduledAt,
		PostedAt:    input.PostedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// A video created directly as posted gets a posted timestamp so the
	// staleness scan can see it.
	if video.Status == types.VideoStatusPosted && video.PostedAt == nil {
		video.PostedAt = &now
	}

	if _, err := s.videoRepo.Create(ctx, nil, []*types.Video{video}); err != nil {
		s.log.Error("Video creation failed", "error", err)
		return nil, apierr.Persistence(err)
	}
	return video, nil
}

func (s *videoService) GetByID(ctx context.Context, id uuid.UUID) (*types.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, "video %s not found", id)
	}
	return video, nil
}

func (s *videoService) List(ctx context.Context, filter repos.VideoFilter) ([]*types.Video, error) {
	if filter.Status != "" && !types.ValidVideoStatus(filter.Status) {
		return nil, apierr.Validation("unknown video status %q", filter.Status)
	}
	videos, err := s.videoRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return videos, nil
}

func (s *videoService) Update(ctx context.Context, id uuid.UUID, patch UpdateVideoInput) (*types.Video, error) {
	existing, err := s.videoRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, "video %s not found", id)
	}

	fields := map[string]interface{}{}
	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, apierr.Validation("video title cannot be empty")
		}
		fields["title"] = *patch.Title
	}
	if patch.Script != nil {
		fields["script"] = *patch.Script
	}
	if patch.Caption != nil {
		fields["caption"] = *patch.Caption
	}
	if patch.Hook != nil {
		fields["hook"] = *patch.Hook
	}
	if patch.Hashtags != nil {
		fields["hashtags"] = jsonList(*patch.Hashtags)
	}
	if patch.DurationSec != nil {
		if *patch.DurationSec <= 0 {
			return nil, apierr.Validation("duration must be a positive number of seconds")
		}
		fields["duration_sec"] = *patch.DurationSec
	}
	if patch.Status != nil {
		if !types.ValidVideoStatus(*patch.Status) {
			return nil, apierr.Validation("unknown video status %q", *patch.Status)
		}
		fields["status"] = *patch.Status
		// Transitioning into posted stamps the posted date unless the
		// caller supplies one.
		if *patch.Status == types.VideoStatusPosted && existing.PostedAt == nil && patch.PostedAt == nil {
			now := s.now()
			fields["posted_at"] = &now
		}
	}
	if patch.ScheduledAt != nil {
		fields["scheduled_at"] = patch.ScheduledAt
	}
	if patch.PostedAt != nil {
		fields["posted_at"] = patch.PostedAt
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.now()
		if err := s.videoRepo.UpdateFields(ctx, nil, id, fields); err != nil {
			return nil, apierr.Persistence(err)
		}
	}

	video, err := s.videoRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return video, nil
}

func (s *videoService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.videoRepo.GetByID(ctx, nil, id); err != nil {
		return notFoundOr(err, "video %s not found", id)
	}

	ids := []uuid.UUID{id}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.metricRepo.DeleteByVideoIDs(ctx, tx, ids); err != nil {
			return err
		}
		if err := s.noteRepo.DeleteByVideoIDs(ctx, tx, ids); err != nil {
			return err
		}
		if err := s.taskRepo.DeleteByVideoIDs(ctx, tx, ids); err != nil {
			return err
		}
		return s.videoRepo.DeleteByIDs(ctx, tx, ids)
	})
	if err != nil {
		s.log.Error("Video deletion failed", "video_id", id, "error", err)
		return apierr.Persistence(err)
	}
	return nil
}
