package types

import (
	"time"

	"github.com/google/uuid"
)

// VideoNote is the single retrospective note attached to a video. Upserted
// by user edits; at most one row per video.
type VideoNote struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"video_id"`
	WhatWorked  string    `gorm:"column:what_worked" json:"what_worked,omitempty"`
	WhatFailed  string    `gorm:"column:what_failed" json:"what_failed,omitempty"`
	WhatToTry   string    `gorm:"column:what_to_try" json:"what_to_try,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (VideoNote) TableName() string { return "video_note" }
