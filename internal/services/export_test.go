package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/types"
)

func TestExportEmptyAccount(t *testing.T) {
	e := newTestEnv(t)
	account := e.mustAccount(t, "Gym Shorts")

	doc, err := e.exportService().ExportAccount(context.Background(), account.ID, FullExport())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if doc.AccountName != "Gym Shorts" {
		t.Fatalf("accountName = %q", doc.AccountName)
	}
	if doc.AccountType != types.NicheFitness {
		t.Fatalf("accountType = %q", doc.AccountType)
	}
	if len(doc.Videos) != 0 {
		t.Fatalf("empty account exported %d videos", len(doc.Videos))
	}
	if len(doc.Ideas) != 0 {
		t.Fatalf("empty account exported %d ideas", len(doc.Ideas))
	}
	if doc.MetricsSummary == nil {
		t.Fatalf("metricsSummary must be present even when empty")
	}
	if doc.MetricsSummary.VideoCount != 0 || doc.MetricsSummary.TotalViews != 0 || doc.MetricsSummary.EngagementRate != 0 {
		t.Fatalf("empty summary must be all zeros, got %+v", doc.MetricsSummary)
	}
	if doc.Streak == nil {
		t.Fatalf("streak section missing")
	}
	if doc.Streak.Current != 0 {
		t.Fatalf("fresh streak must export as zero, got %d", doc.Streak.Current)
	}
}

func TestExportFullDocument(t *testing.T) {
	e := newTestEnv(t)
	account := e.mustAccount(t, "Gym Shorts")
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	posted := e.mustVideo(t, account.ID, "Leg day myths", types.VideoStatusPosted, timePtr(base))
	planned := e.mustVideo(t, account.ID, "Morning routine", types.VideoStatusPlanned, nil)

	if _, err := e.metricsService().RecordVideoMetric(ctx, posted.ID, RecordVideoMetricInput{
		Platform: "tiktok", Views: 500, Likes: 40, Comments: 10, Shares: 2,
	}); err != nil {
		t.Fatalf("seed metric: %v", err)
	}

	noteSvc := NewVideoNoteService(e.db, e.log, e.videoNoteRepo, e.videoRepo)
	if _, err := noteSvc.Upsert(ctx, posted.ID, UpsertVideoNoteInput{WhatWorked: "strong hook"}); err != nil {
		t.Fatalf("seed note: %v", err)
	}

	ideaSvc := NewIdeaService(e.db, e.log, e.ideaRepo)
	if _, err := ideaSvc.Create(ctx, CreateIdeaInput{AccountID: account.ID, Title: "Gym fails compilation"}); err != nil {
		t.Fatalf("seed idea: %v", err)
	}

	doc, err := e.exportService().ExportAccount(ctx, account.ID, FullExport())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if len(doc.Videos) != 2 {
		t.Fatalf("want both videos exported, got %d", len(doc.Videos))
	}
	var postedExport *ExportVideo
	for _, v := range doc.Videos {
		if v.ID == posted.ID {
			postedExport = v
		}
		if v.ID == planned.ID && len(v.Metrics) != 0 {
			t.Fatalf("planned video must export an empty metric list")
		}
	}
	if postedExport == nil {
		t.Fatalf("posted video missing from export")
	}
	if len(postedExport.Metrics) != 1 {
		t.Fatalf("posted video metric history length = %d", len(postedExport.Metrics))
	}
	if postedExport.Note == nil || postedExport.Note.WhatWorked != "strong hook" {
		t.Fatalf("note missing from export: %+v", postedExport.Note)
	}

	if len(doc.Ideas) != 1 {
		t.Fatalf("want 1 idea, got %d", len(doc.Ideas))
	}

	s := doc.MetricsSummary
	if s.VideoCount != 1 {
		t.Fatalf("only the measured posted video counts, got %d", s.VideoCount)
	}
	if s.TotalViews != 500 || s.TotalLikes != 40 {
		t.Fatalf("summary totals wrong: %+v", s)
	}
	wantRate := float64(40+10+2) / 500
	if s.EngagementRate != wantRate {
		t.Fatalf("engagement rate = %f, want %f", s.EngagementRate, wantRate)
	}
}

func TestExportScopeSelection(t *testing.T) {
	e := newTestEnv(t)
	account := e.mustAccount(t, "Gym Shorts")
	e.mustVideo(t, account.ID, "Leg day myths", types.VideoStatusPosted, nil)

	doc, err := e.exportService().ExportAccount(context.Background(), account.ID, ExportScope{Streak: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if doc.Videos != nil {
		t.Fatalf("videos excluded from scope must be omitted")
	}
	if doc.MetricsSummary != nil {
		t.Fatalf("metrics summary rides with the videos scope")
	}
	if doc.Streak == nil {
		t.Fatalf("streak requested but missing")
	}
}

func TestExportUnknownAccount(t *testing.T) {
	e := newTestEnv(t)
	if _, err := e.exportService().ExportAccount(context.Background(), uuid.New(), FullExport()); !apierr.IsNotFound(err) {
		t.Fatalf("want not-found, got %v", err)
	}
}
