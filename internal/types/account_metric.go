package types

import (
	"time"

	"github.com/google/uuid"
)

// AccountMetric is an append-only per-platform snapshot of account-level
// counters. The latest row per platform is the account's "current" state;
// consecutive rows support delta computation (follower growth).
type AccountMetric struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID      uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	Account        *Account  `gorm:"foreignKey:AccountID;references:ID" json:"account,omitempty"`
	Platform       string    `gorm:"column:platform;not null;index" json:"platform"`
	Followers      int64     `gorm:"column:followers;not null;default:0" json:"followers"`
	Reach          *int64    `gorm:"column:reach" json:"reach,omitempty"`
	Impressions    *int64    `gorm:"column:impressions" json:"impressions,omitempty"`
	ProfileViews   *int64    `gorm:"column:profile_views" json:"profile_views,omitempty"`
	EngagementRate *float64  `gorm:"column:engagement_rate" json:"engagement_rate,omitempty"`
	TotalViews     *int64    `gorm:"column:total_views" json:"total_views,omitempty"`
	TotalLikes     *int64    `gorm:"column:total_likes" json:"total_likes,omitempty"`
	TotalComments  *int64    `gorm:"column:total_comments" json:"total_comments,omitempty"`
	TotalShares    *int64    `gorm:"column:total_shares" json:"total_shares,omitempty"`
	RecordedAt     time.Time `gorm:"column:recorded_at;not null;index" json:"recorded_at"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (AccountMetric) TableName() string { return "account_metric" }
