package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type UpsertVideoNoteInput struct {
	WhatWorked string `json:"what_worked"`
	WhatFailed string `json:"what_failed"`
	WhatToTry  string `json:"what_to_try"`
}

type VideoNoteService interface {
	GetByVideo(ctx context.Context, videoID uuid.UUID) (*types.VideoNote, error)
	Upsert(ctx context.Context, videoID uuid.UUID, input UpsertVideoNoteInput) (*types.VideoNote, error)
}

type videoNoteService struct {
	db        *gorm.DB
	log       *logger.Logger
	now       clock
	noteRepo  repos.VideoNoteRepo
	videoRepo repos.VideoRepo
}

func NewVideoNoteService(db *gorm.DB, log *logger.Logger, noteRepo repos.VideoNoteRepo, videoRepo repos.VideoRepo) VideoNoteService {
	serviceLog := log.With("service", "VideoNoteService")
	return &videoNoteService{db: db, log: serviceLog, now: utcNow, noteRepo: noteRepo, videoRepo: videoRepo}
}

func (s *videoNoteService) GetByVideo(ctx context.Context, videoID uuid.UUID) (*types.VideoNote, error) {
	note, err := s.noteRepo.GetByVideoID(ctx, nil, videoID)
	if err != nil {
		return nil, notFoundOr(err, "no note for video %s", videoID)
	}
	return note, nil
}

func (s *videoNoteService) Upsert(ctx context.Context, videoID uuid.UUID, input UpsertVideoNoteInput) (*types.VideoNote, error) {
	if videoID == uuid.Nil {
		return nil, apierr.Validation("video id is required")
	}
	if _, err := s.videoRepo.GetByID(ctx, nil, videoID); err != nil {
		return nil, notFoundOr(err, "video %s not found", videoID)
	}

	now := s.now()
	note := &types.VideoNote{
		ID:         uuid.New(),
		VideoID:    videoID,
		WhatWorked: input.WhatWorked,
		WhatFailed: input.WhatFailed,
		WhatToTry:  input.WhatToTry,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.noteRepo.Upsert(ctx, nil, note); err != nil {
		s.log.Error("Video note upsert failed", "video_id", videoID, "error", err)
		return nil, apierr.Persistence(err)
	}

	// Re-read: on conflict the stored row keeps its original id and
	// created_at.
	stored, err := s.noteRepo.GetByVideoID(ctx, nil, videoID)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return stored, nil
}
