package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reelkit/reelkit-backend/internal/data/repos"
	"github.com/reelkit/reelkit-backend/internal/pkg/apierr"
	"github.com/reelkit/reelkit-backend/internal/pkg/logger"
	"github.com/reelkit/reelkit-backend/internal/platform/fieldcrypt"
	"github.com/reelkit/reelkit-backend/internal/types"
)

type ConversationService interface {
	Create(ctx context.Context, accountID uuid.UUID, title string) (*types.Conversation, error)
	// GetByID returns the conversation with its messages in seq order.
	GetByID(ctx context.Context, id uuid.UUID) (*types.Conversation, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*types.Conversation, error)
	AppendMessage(ctx context.Context, conversationID uuid.UUID, role, content string) (*types.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type conversationService struct {
	db          *gorm.DB
	log         *logger.Logger
	now         clock
	convRepo    repos.ConversationRepo
	messageRepo repos.MessageRepo
	// cipher guards transcript content at rest; nil means plaintext.
	cipher *fieldcrypt.Cipher
}

func NewConversationService(db *gorm.DB, log *logger.Logger, convRepo repos.ConversationRepo, messageRepo repos.MessageRepo, cipher *fieldcrypt.Cipher) ConversationService {
	serviceLog := log.With("service", "ConversationService")
	return &conversationService{
		db:          db,
		log:         serviceLog,
		now:         utcNow,
		convRepo:    convRepo,
		messageRepo: messageRepo,
		cipher:      cipher,
	}
}

func (s *conversationService) Create(ctx context.Context, accountID uuid.UUID, title string) (*types.Conversation, error) {
	if accountID == uuid.Nil {
		return nil, apierr.Validation("account id is required")
	}

	now := s.now()
	conversation := &types.Conversation{
		ID:        uuid.New(),
		AccountID: accountID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.convRepo.Create(ctx, nil, []*types.Conversation{conversation}); err != nil {
		return nil, apierr.Persistence(err)
	}
	return conversation, nil
}

func (s *conversationService) GetByID(ctx context.Context, id uuid.UUID) (*types.Conversation, error) {
	conversation, err := s.convRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, notFoundOr(err, "conversation %s not found", id)
	}

	messages, err := s.messageRepo.ListByConversation(ctx, nil, id)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	for _, m := range messages {
		m.Content = s.decrypt(m.Content)
	}
	conversation.Messages = messages
	return conversation, nil
}

func (s *conversationService) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*types.Conversation, error) {
	conversations, err := s.convRepo.ListByAccount(ctx, nil, accountID)
	if err != nil {
		return nil, apierr.Persistence(err)
	}
	return conversations, nil
}

func (s *conversationService) AppendMessage(ctx context.Context, conversationID uuid.UUID, role, content string) (*types.Message, error) {
	if !types.ValidMessageRole(role) {
		return nil, apierr.Validation("unknown message role %q", role)
	}
	if content == "" {
		return nil, apierr.Validation("message content is required")
	}
	if _, err := s.convRepo.GetByID(ctx, nil, conversationID); err != nil {
		return nil, notFoundOr(err, "conversation %s not found", conversationID)
	}

	now := s.now()
	var message *types.Message
	err := s.db.Transaction(func(tx *gorm.DB) error {
		maxSeq, err := s.messageRepo.MaxSeq(ctx, tx, conversationID)
		if err != nil {
			return err
		}
		message = &types.Message{
			ID:             uuid.New(),
			ConversationID: conversationID,
			Seq:            maxSeq + 1,
			Role:           role,
			Content:        s.encrypt(content),
			CreatedAt:      now,
		}
		if _, err := s.messageRepo.Create(ctx, tx, []*types.Message{message}); err != nil {
			return err
		}
		return s.convRepo.UpdateFields(ctx, tx, conversationID, map[string]interface{}{
			"last_message_at": &now,
			"updated_at":      now,
		})
	})
	if err != nil {
		s.log.Error("Message append failed", "conversation_id", conversationID, "error", err)
		return nil, apierr.Persistence(err)
	}

	message.Content = content
	return message, nil
}

func (s *conversationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.convRepo.GetByID(ctx, nil, id); err != nil {
		return notFoundOr(err, "conversation %s not found", id)
	}

	ids := []uuid.UUID{id}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.messageRepo.DeleteByConversationIDs(ctx, tx, ids); err != nil {
			return err
		}
		return s.convRepo.DeleteByIDs(ctx, tx, ids)
	})
	if err != nil {
		return apierr.Persistence(err)
	}
	return nil
}

func (s *conversationService) encrypt(content string) string {
	if s.cipher == nil {
		return content
	}
	sealed, err := s.cipher.EncryptString(content)
	if err != nil {
		s.log.Warn("Message encryption failed, storing plaintext", "error", err)
		return content
	}
	return sealed
}

func (s *conversationService) decrypt(content string) string {
	if s.cipher == nil {
		return content
	}
	plain, err := s.cipher.DecryptString(content)
	if err != nil {
		// Rows written before encryption was enabled stay readable.
		return content
	}
	return plain
}
