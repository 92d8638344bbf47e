package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/types"
)

func (e *testEnv) ideaService() IdeaService {
	return NewIdeaService(e.db, e.log, e.ideaRepo)
}

func (e *testEnv) folderService() IdeaFolderService {
	return NewIdeaFolderService(e.db, e.log, e.folderRepo, e.ideaRepo)
}

func TestIdeaCreateDefaults(t *testing.T) {
	e := newTestEnv(t)
	account := e.mustAccount(t, "Gym Shorts")

	idea, err := e.ideaService().Create(context.Background(), CreateIdeaInput{
		AccountID: account.ID,
		Title:     "Gym fails compilation",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if idea.Status != types.IdeaStatusNew {
		t.Fatalf("default status = %q", idea.Status)
	}
	if idea.Priority != types.IdeaPriorityDefault {
		t.Fatalf("default priority = %d", idea.Priority)
	}
}

func TestIdeaCreateValidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")
	svc := e.ideaService()

	cases := []struct {
		name  string
		input CreateIdeaInput
	}{
		{"missing account", CreateIdeaInput{Title: "x"}},
		{"missing title", CreateIdeaInput{AccountID: account.ID}},
		{"priority too high", CreateIdeaInput{AccountID: account.ID, Title: "x", Priority: 9}},
		{"unknown status", CreateIdeaInput{AccountID: account.ID, Title: "x", Status: "simmering"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.input); !apierr.IsValidation(err) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestIdeaListFiltersByFolder(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")

	folder, err := e.folderService().Create(ctx, account.ID, "Hooks")
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if _, err := e.ideaService().Create(ctx, CreateIdeaInput{AccountID: account.ID, Title: "In folder", FolderID: &folder.ID}); err != nil {
		t.Fatalf("create idea: %v", err)
	}
	if _, err := e.ideaService().Create(ctx, CreateIdeaInput{AccountID: account.ID, Title: "Loose"}); err != nil {
		t.Fatalf("create idea: %v", err)
	}

	filtered, err := e.ideaService().List(ctx, repos.IdeaFilter{AccountID: account.ID, FolderID: &folder.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Title != "In folder" {
		t.Fatalf("folder filter = %+v", filtered)
	}
}

func TestFolderDeleteDetachesIdeas(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")

	folder, err := e.folderService().Create(ctx, account.ID, "Hooks")
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	idea, err := e.ideaService().Create(ctx, CreateIdeaInput{AccountID: account.ID, Title: "In folder", FolderID: &folder.ID})
	if err != nil {
		t.Fatalf("create idea: %v", err)
	}

	if err := e.folderService().Delete(ctx, folder.ID); err != nil {
		t.Fatalf("delete folder: %v", err)
	}

	if _, err := e.folderService().GetByID(ctx, folder.ID); !apierr.IsNotFound(err) {
		t.Fatalf("folder must be gone, got %v", err)
	}
	survived, err := e.ideaService().GetByID(ctx, idea.ID)
	if err != nil {
		t.Fatalf("idea must survive folder deletion: %v", err)
	}
	if survived.FolderID != nil {
		t.Fatalf("idea must be detached, folder_id = %v", survived.FolderID)
	}
}

func TestIdeaMoveBetweenFolders(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")

	folder, err := e.folderService().Create(ctx, account.ID, "Hooks")
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	idea, err := e.ideaService().Create(ctx, CreateIdeaInput{AccountID: account.ID, Title: "Loose idea"})
	if err != nil {
		t.Fatalf("create idea: %v", err)
	}

	target := &folder.ID
	moved, err := e.ideaService().Update(ctx, idea.ID, UpdateIdeaInput{FolderID: &target})
	if err != nil {
		t.Fatalf("move in: %v", err)
	}
	if moved.FolderID == nil || *moved.FolderID != folder.ID {
		t.Fatalf("folder_id after move = %v", moved.FolderID)
	}

	var detached *uuid.UUID
	moved, err = e.ideaService().Update(ctx, idea.ID, UpdateIdeaInput{FolderID: &detached})
	if err != nil {
		t.Fatalf("move out: %v", err)
	}
	if moved.FolderID != nil {
		t.Fatalf("folder_id after detach = %v", moved.FolderID)
	}
}
