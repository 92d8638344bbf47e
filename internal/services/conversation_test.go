package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/platform/fieldcrypt"
	"github.com/reelkit/reelkit-backend/internal/types"
)

func (e *testEnv) conversationService(cipher *fieldcrypt.Cipher) ConversationService {
	return NewConversationService(e.db, e.log, e.convRepo, e.messageRepo, cipher)
}

func TestConversationAppendAssignsSequentialSeq(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")
	svc := e.conversationService(nil)

	conv, err := svc.Create(ctx, account.ID, "Brainstorm")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.AppendMessage(ctx, conv.ID, types.MessageRoleUser, "give me three hooks")
	if err != nil {
		t.Fatalf("append first: %v", err)
	}
	second, err := svc.AppendMessage(ctx, conv.ID, types.MessageRoleAssistant, "here are three hooks")
	if err != nil {
		t.Fatalf("append second: %v", err)
	}
	if first.Seq != 1 || second.Seq != 2 {
		t.Fatalf("seq = %d, %d, want 1, 2", first.Seq, second.Seq)
	}

	fetched, err := svc.GetByID(ctx, conv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(fetched.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(fetched.Messages))
	}
	if fetched.Messages[0].Seq != 1 || fetched.Messages[1].Seq != 2 {
		t.Fatalf("messages out of order: %d, %d", fetched.Messages[0].Seq, fetched.Messages[1].Seq)
	}
	if fetched.LastMessageAt == nil {
		t.Fatalf("last_message_at must be set after append")
	}
}

func TestConversationAppendValidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")
	svc := e.conversationService(nil)

	conv, err := svc.Create(ctx, account.ID, "Brainstorm")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AppendMessage(ctx, conv.ID, "moderator", "hi"); !apierr.IsValidation(err) {
		t.Fatalf("unknown role must fail validation, got %v", err)
	}
	if _, err := svc.AppendMessage(ctx, conv.ID, types.MessageRoleUser, ""); !apierr.IsValidation(err) {
		t.Fatalf("empty content must fail validation, got %v", err)
	}
	if _, err := svc.AppendMessage(ctx, uuid.New(), types.MessageRoleUser, "hi"); !apierr.IsNotFound(err) {
		t.Fatalf("unknown conversation must be not-found, got %v", err)
	}
}

func TestConversationContentEncryptedAtRest(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")

	cipher, err := fieldcrypt.New("local-dev-passphrase")
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	svc := e.conversationService(cipher)

	conv, err := svc.Create(ctx, account.ID, "Brainstorm")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	plaintext := "pin the comment with the recipe"
	message, err := svc.AppendMessage(ctx, conv.ID, types.MessageRoleUser, plaintext)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if message.Content != plaintext {
		t.Fatalf("caller must see plaintext, got %q", message.Content)
	}

	stored, err := e.messageRepo.ListByConversation(ctx, nil, conv.ID)
	if err != nil || len(stored) != 1 {
		t.Fatalf("list stored: %d (err %v)", len(stored), err)
	}
	if stored[0].Content == plaintext || strings.Contains(stored[0].Content, "recipe") {
		t.Fatalf("content stored in the clear: %q", stored[0].Content)
	}

	fetched, err := svc.GetByID(ctx, conv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Messages[0].Content != plaintext {
		t.Fatalf("decrypted read = %q, want %q", fetched.Messages[0].Content, plaintext)
	}
}

func TestConversationReadsPreEncryptionRows(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")

	// Written before an encryption key was configured.
	plainSvc := e.conversationService(nil)
	conv, err := plainSvc.Create(ctx, account.ID, "Brainstorm")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := plainSvc.AppendMessage(ctx, conv.ID, types.MessageRoleUser, "old plaintext row"); err != nil {
		t.Fatalf("append: %v", err)
	}

	cipher, err := fieldcrypt.New("local-dev-passphrase")
	if err != nil {
		t.Fatalf("cipher: %v", err)
	}
	fetched, err := e.conversationService(cipher).GetByID(ctx, conv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Messages[0].Content != "old plaintext row" {
		t.Fatalf("pre-encryption row unreadable: %q", fetched.Messages[0].Content)
	}
}

func TestConversationDeleteCascadesMessages(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")
	svc := e.conversationService(nil)

	conv, err := svc.Create(ctx, account.ID, "Brainstorm")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.AppendMessage(ctx, conv.ID, types.MessageRoleUser, "hi"); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := svc.Delete(ctx, conv.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, conv.ID); !apierr.IsNotFound(err) {
		t.Fatalf("want not-found after delete, got %v", err)
	}
	messages, err := e.messageRepo.ListByConversation(ctx, nil, conv.ID)
	if err != nil || len(messages) != 0 {
		t.Fatalf("messages must be gone, got %d (err %v)", len(messages), err)
	}
}

func TestConversationListMostRecentFirst(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	account := e.mustAccount(t, "Gym Shorts")
	svc := e.conversationService(nil)

	older, err := svc.Create(ctx, account.ID, "Older")
	if err != nil {
		t.Fatalf("create older: %v", err)
	}
	newer, err := svc.Create(ctx, account.ID, "Newer")
	if err != nil {
		t.Fatalf("create newer: %v", err)
	}
	// Activity on the older thread moves it to the top.
	if _, err := svc.AppendMessage(ctx, older.ID, types.MessageRoleUser, "still going"); err != nil {
		t.Fatalf("append: %v", err)
	}

	listed, err := svc.ListByAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("got %d conversations, want 2", len(listed))
	}
	if listed[0].ID != older.ID || listed[1].ID != newer.ID {
		t.Fatalf("order = %q, %q; want active thread first", listed[0].Title, listed[1].Title)
	}
}
