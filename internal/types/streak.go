package types

import (
	"time"

	"github.com/google/uuid"
)

// Streak is the per-account gamification state. It is mutated only through
// the streak engine's RecordActivity; everything else reads it. A streak row
// is lazily created with zero values the first time an account is touched.
type Streak struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"account_id"`
	Current        int        `gorm:"column:current;not null;default:0" json:"current"`
	Longest        int        `gorm:"column:longest;not null;default:0" json:"longest"`
	LastActivityAt *time.Time `gorm:"column:last_activity_at" json:"last_activity_at,omitempty"`
	XP             int64      `gorm:"column:xp;not null;default:0" json:"xp"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
}

func (Streak) TableName() string { return "streak" }
