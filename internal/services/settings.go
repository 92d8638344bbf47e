package services

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type SettingsService interface {
	// Get returns the singleton settings row, creating it with defaults
	// on first access.
	Get(ctx context.Context) (map[string]string, error)
	// Update sets the model for one task category.
	Update(ctx context.Context, category, model string) (map[string]string, error)
	// Reset restores all categories to their defaults.
	Reset(ctx context.Context) (map[string]string, error)
}

type settingsService struct {
	db   *gorm.DB
	log  *logger.Logger
	now  clock
	repo repos.UserSettingsRepo
}

func NewSettingsService(db *gorm.DB, log *logger.Logger, repo repos.UserSettingsRepo) SettingsService {
	serviceLog := log.With("service", "SettingsService")
	return &settingsService{db: db, log: serviceLog, now: utcNow, repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (map[string]string, error) {
	stored, err := s.repo.Get(ctx, nil)
	if err != nil {
		if !isNotFound(err) {
			return nil, apierr.Persistence(err)
		}
		return s.save(ctx, types.DefaultSettingsModels())
	}
	return decodeModels(stored)
}

func (s *settingsService) Update(ctx context.Context, category, model string) (map[string]string, error) {
	if !types.ValidSettingsCategory(category) {
		return nil, apierr.Validation("unknown settings category %q", category)
	}
	if model == "" {
		return nil, apierr.Validation("model is required")
	}

	models, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	models[category] = model
	return s.save(ctx, models)
}

func (s *settingsService) Reset(ctx context.Context) (map[string]string, error) {
	return s.save(ctx, types.DefaultSettingsModels())
}

func (s *settingsService) save(ctx context.Context, models map[string]string) (map[string]string, error) {
	encoded, err := json.Marshal(models)
	if err != nil {
		return nil, apierr.Persistence(err)
	}

	now := s.now()
	settings := &types.UserSettings{
		ID:        types.UserSettingsID,
		Models:    encoded,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.repo.Save(ctx, nil, settings); err != nil {
		return nil, apierr.Persistence(err)
	}
	return models, nil
}

func decodeModels(settings *types.UserSettings) (map[string]string, error) {
	models := map[string]string{}
	if len(settings.Models) > 0 {
		if err := json.Unmarshal(settings.Models, &models); err != nil {
			return nil, apierr.Persistence(err)
		}
	}
	// Categories added after the row was written pick up their defaults.
	for category, model := range types.DefaultSettingsModels() {
		if _, ok := models[category]; !ok {
			models[category] = model
		}
	}
	return models, nil
}
