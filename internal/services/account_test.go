package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/types"
)

func TestAccountCreateSeedsStreakAndMetrics(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	reach := int64(4000)

	account, err := e.accountService().Create(ctx, CreateAccountInput{
		Name:      "Gym Shorts",
		Niche:     types.NicheFitness,
		Platforms: []string{"tiktok", "instagram"},
		InitialMetrics: map[string]InitialPlatformMetric{
			"tiktok": {Followers: 1200, Reach: &reach},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := e.accountService().GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Name != "Gym Shorts" || fetched.Niche != types.NicheFitness {
		t.Fatalf("round trip mismatch: %+v", fetched)
	}

	streak, err := e.streakRepo.GetByAccountID(ctx, nil, account.ID)
	if err != nil {
		t.Fatalf("seeded streak missing: %v", err)
	}
	if streak.Current != 0 || streak.XP != 0 {
		t.Fatalf("seeded streak must be zero-valued: %+v", streak)
	}

	snapshots, err := e.accMetricRepo.ListByAccount(ctx, nil, account.ID, "tiktok")
	if err != nil {
		t.Fatalf("list snapshots: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("want 1 onboarding snapshot, got %d", len(snapshots))
	}
	if snapshots[0].Followers != 1200 {
		t.Fatalf("snapshot followers = %d", snapshots[0].Followers)
	}
	if snapshots[0].Reach == nil || *snapshots[0].Reach != 4000 {
		t.Fatalf("snapshot reach = %v", snapshots[0].Reach)
	}
}

func TestAccountCreateValidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	svc := e.accountService()

	cases := []struct {
		name  string
		input CreateAccountInput
	}{
		{"missing name", CreateAccountInput{Niche: types.NicheFitness}},
		{"missing niche", CreateAccountInput{Name: "x"}},
		{"unknown niche", CreateAccountInput{Name: "x", Niche: "underwater basket weaving"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.input); !apierr.IsValidation(err) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestAccountUpdatePatchesOnlyGivenFields(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")

	newName := "Gym Shorts Daily"
	updated, err := e.accountService().Update(ctx, account.ID, UpdateAccountInput{Name: &newName})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != newName {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Niche != types.NicheFitness {
		t.Fatalf("untouched field changed: %q", updated.Niche)
	}
}

func TestAccountSoftDeleteKeepsChildren(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")
	video := e.mustVideo(t, account.ID, "Leg day myths", types.VideoStatusPlanned, nil)

	if err := e.accountService().Delete(ctx, account.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := e.accountService().GetByID(ctx, account.ID); !apierr.IsNotFound(err) {
		t.Fatalf("soft-deleted account must read as not found, got %v", err)
	}
	// Soft delete is reversible; owned records stay put.
	if _, err := e.videoRepo.GetByID(ctx, nil, video.ID); err != nil {
		t.Fatalf("child video must survive soft delete: %v", err)
	}
}

func TestAccountPurgeCascades(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")
	video := e.mustVideo(t, account.ID, "Leg day myths", types.VideoStatusPosted, nil)

	if _, err := e.metricsService().RecordVideoMetric(ctx, video.ID, RecordVideoMetricInput{
		Platform: "tiktok", Views: 100,
	}); err != nil {
		t.Fatalf("seed metric: %v", err)
	}
	ideaSvc := NewIdeaService(e.db, e.log, e.ideaRepo)
	if _, err := ideaSvc.Create(ctx, CreateIdeaInput{AccountID: account.ID, Title: "Gym fails"}); err != nil {
		t.Fatalf("seed idea: %v", err)
	}
	convSvc := NewConversationService(e.db, e.log, e.convRepo, e.messageRepo, nil)
	conv, err := convSvc.Create(ctx, account.ID, "Brainstorm")
	if err != nil {
		t.Fatalf("seed conversation: %v", err)
	}
	if _, err := convSvc.AppendMessage(ctx, conv.ID, types.MessageRoleUser, "hello"); err != nil {
		t.Fatalf("seed message: %v", err)
	}

	if err := e.accountService().Purge(ctx, account.ID); err != nil {
		t.Fatalf("purge: %v", err)
	}

	if _, err := e.videoRepo.GetByID(ctx, nil, video.ID); !isNotFound(err) {
		t.Fatalf("video must be gone after purge, got %v", err)
	}
	metrics, err := e.videoMetricRepo.ListByVideo(ctx, nil, video.ID)
	if err != nil || len(metrics) != 0 {
		t.Fatalf("video metrics must be gone, got %d (err %v)", len(metrics), err)
	}
	ideas, err := e.ideaRepo.List(ctx, nil, repos.IdeaFilter{AccountID: account.ID})
	if err != nil || len(ideas) != 0 {
		t.Fatalf("ideas must be gone, got %d (err %v)", len(ideas), err)
	}
	if _, err := e.convRepo.GetByID(ctx, nil, conv.ID); !isNotFound(err) {
		t.Fatalf("conversation must be gone, got %v", err)
	}
	messages, err := e.messageRepo.ListByConversation(ctx, nil, conv.ID)
	if err != nil || len(messages) != 0 {
		t.Fatalf("messages must be gone, got %d (err %v)", len(messages), err)
	}
	if _, err := e.streakRepo.GetByAccountID(ctx, nil, account.ID); !isNotFound(err) {
		t.Fatalf("streak must be gone, got %v", err)
	}
}

func TestAccountGetUnknown(t *testing.T) {
	e := newTestEnv(t)
	if _, err := e.accountService().GetByID(context.Background(), uuid.New()); !apierr.IsNotFound(err) {
		t.Fatalf("want not-found, got %v", err)
	}
}
