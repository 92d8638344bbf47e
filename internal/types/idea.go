package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	IdeaStatusNew        = "new"
	IdeaStatusInProgress = "in_progress"
	IdeaStatusUsed       = "used"
	IdeaStatusArchived   = "archived"
)

const (
	IdeaPriorityMin     = 1
	IdeaPriorityMax     = 5
	IdeaPriorityDefault = 3
)

type Idea struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	Account     *Account       `gorm:"foreignKey:AccountID;references:ID" json:"account,omitempty"`
	FolderID    *uuid.UUID     `gorm:"type:uuid;index" json:"folder_id,omitempty"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	Priority    int            `gorm:"column:priority;not null;default:3" json:"priority"`
	Status      string         `gorm:"column:status;not null;index" json:"status"`
	Tags        datatypes.JSON `gorm:"column:tags" json:"tags"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Idea) TableName() string { return "idea" }

func ValidIdeaStatus(status string) bool {
	switch status {
	case IdeaStatusNew, IdeaStatusInProgress, IdeaStatusUsed, IdeaStatusArchived:
		return true
	default:
		return false
	}
}
