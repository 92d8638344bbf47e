package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/types"
)

func (e *testEnv) settingsService() SettingsService {
	return NewSettingsService(e.db, e.log, e.settingsRepo)
}

func TestSettingsGetCreatesDefaults(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	models, err := e.settingsService().Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defaults := types.DefaultSettingsModels()
	if len(models) != len(defaults) {
		t.Fatalf("got %d categories, want %d", len(models), len(defaults))
	}
	for category, model := range defaults {
		if models[category] != model {
			t.Fatalf("category %q = %q, want %q", category, models[category], model)
		}
	}

	// The first Get persists the row.
	if _, err := e.settingsRepo.Get(ctx, nil); err != nil {
		t.Fatalf("settings row not persisted: %v", err)
	}
}

func TestSettingsUpdateChangesOneCategory(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	svc := e.settingsService()

	models, err := svc.Update(ctx, types.SettingsCategoryChat, "gpt-5")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if models[types.SettingsCategoryChat] != "gpt-5" {
		t.Fatalf("chat model = %q", models[types.SettingsCategoryChat])
	}
	defaults := types.DefaultSettingsModels()
	if models[types.SettingsCategoryCreative] != defaults[types.SettingsCategoryCreative] {
		t.Fatalf("untouched category changed: %q", models[types.SettingsCategoryCreative])
	}

	fetched, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if fetched[types.SettingsCategoryChat] != "gpt-5" {
		t.Fatalf("update not persisted: %q", fetched[types.SettingsCategoryChat])
	}
}

func TestSettingsUpdateValidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	svc := e.settingsService()

	if _, err := svc.Update(ctx, "translation", "gpt-5"); !apierr.IsValidation(err) {
		t.Fatalf("unknown category must fail validation, got %v", err)
	}
	if _, err := svc.Update(ctx, types.SettingsCategoryChat, ""); !apierr.IsValidation(err) {
		t.Fatalf("empty model must fail validation, got %v", err)
	}
}

func TestSettingsResetRestoresDefaults(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	svc := e.settingsService()

	if _, err := svc.Update(ctx, types.SettingsCategoryChat, "gpt-5"); err != nil {
		t.Fatalf("update: %v", err)
	}
	models, err := svc.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	defaults := types.DefaultSettingsModels()
	if models[types.SettingsCategoryChat] != defaults[types.SettingsCategoryChat] {
		t.Fatalf("reset did not restore chat model: %q", models[types.SettingsCategoryChat])
	}
}

func TestSettingsDecodeFillsNewCategories(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	// A row written before a category existed only carries the old keys.
	encoded, _ := json.Marshal(map[string]string{types.SettingsCategoryChat: "gpt-5"})
	stored := &types.UserSettings{ID: types.UserSettingsID, Models: encoded}
	if _, err := e.settingsRepo.Save(ctx, nil, stored); err != nil {
		t.Fatalf("seed row: %v", err)
	}

	models, err := e.settingsService().Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if models[types.SettingsCategoryChat] != "gpt-5" {
		t.Fatalf("stored value lost: %q", models[types.SettingsCategoryChat])
	}
	defaults := types.DefaultSettingsModels()
	if models[types.SettingsCategoryAnalysis] != defaults[types.SettingsCategoryAnalysis] {
		t.Fatalf("missing category must pick up its default, got %q", models[types.SettingsCategoryAnalysis])
	}
}
