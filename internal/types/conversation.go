package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

type Conversation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"account_id"`
	Account       *Account   `gorm:"foreignKey:AccountID;references:ID" json:"account,omitempty"`
	Title         string     `gorm:"column:title" json:"title,omitempty"`
	LastMessageAt *time.Time `gorm:"column:last_message_at;index" json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`

	Messages []*Message `gorm:"foreignKey:ConversationID;references:ID" json:"messages,omitempty"`
}

func (Conversation) TableName() string { return "conversation" }

// Message ordering within a conversation is by Seq, assigned monotonically
// by the conversation service at append time.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index:idx_message_conversation_seq" json:"conversation_id"`
	Seq            int       `gorm:"column:seq;not null;index:idx_message_conversation_seq" json:"seq"`
	Role           string    `gorm:"column:role;not null" json:"role"`
	Content        string    `gorm:"column:content;not null" json:"content"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (Message) TableName() string { return "message" }

func ValidMessageRole(role string) bool {
	switch role {
	case MessageRoleUser, MessageRoleAssistant, MessageRoleSystem:
		return true
	default:
		return false
	}
}
