package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Video status values. Transitions are not enforced: callers may set any
// status directly (a video can jump from planned to posted).
const (
	VideoStatusPlanned = "planned"
	VideoStatusFilmed  = "filmed"
	VideoStatusEdited  = "edited"
	VideoStatusPosted  = "posted"
)

type Video struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	Account     *Account       `gorm:"foreignKey:AccountID;references:ID" json:"account,omitempty"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Script      string         `gorm:"column:script" json:"script,omitempty"`
	Caption     string         `gorm:"column:caption" json:"caption,omitempty"`
	Hook        string         `gorm:"column:hook" json:"hook,omitempty"`
	Hashtags    datatypes.JSON `gorm:"column:hashtags" json:"hashtags"`
	DurationSec int            `gorm:"column:duration_sec;not null" json:"duration_sec"`
	Status      string         `gorm:"column:status;not null;index" json:"status"`
	ScheduledAt *time.Time     `gorm:"column:scheduled_at" json:"scheduled_at,omitempty"`
	PostedAt    *time.Time     `gorm:"column:posted_at;index" json:"posted_at,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Video) TableName() string { return "video" }

func ValidVideoStatus(status string) bool {
	switch status {
	case VideoStatusPlanned, VideoStatusFilmed, VideoStatusEdited, VideoStatusPosted:
		return true
	default:
		return false
	}
}
