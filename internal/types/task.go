package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskTypeMetricsUpdate = "metrics_update"
	TaskTypeReminder      = "reminder"
)

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// Task is created either directly by the user or synthesized by the
// metrics-update generation pipeline. Among non-completed tasks, at most one
// task per (account, type, video) exists at a time; the pipeline enforces
// this by de-duplicating against pending tasks on every run.
type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"account_id"`
	Account     *Account   `gorm:"foreignKey:AccountID;references:ID" json:"account,omitempty"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description string     `gorm:"column:description" json:"description,omitempty"`
	Type        string     `gorm:"column:type;not null;index:idx_task_type_status" json:"type"`
	Priority    int        `gorm:"column:priority;not null;default:3" json:"priority"`
	Status      string     `gorm:"column:status;not null;index:idx_task_type_status" json:"status"`
	DueAt       *time.Time `gorm:"column:due_at" json:"due_at,omitempty"`
	VideoID     *uuid.UUID `gorm:"type:uuid;index" json:"video_id,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Task) TableName() string { return "task" }

func ValidTaskStatus(status string) bool {
	return status == TaskStatusPending || status == TaskStatusCompleted
}
