package types

import (
	"time"

	"github.com/google/uuid"
)

// VideoMetric is an append-only per-platform snapshot of a video's counters.
// Rows are never updated; the series is the source of truth and derived
// values (engagement rate, totals) are computed on read.
type VideoMetric struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID    uuid.UUID `gorm:"type:uuid;not null;index" json:"video_id"`
	Video      *Video    `gorm:"foreignKey:VideoID;references:ID" json:"video,omitempty"`
	Platform   string    `gorm:"column:platform;not null" json:"platform"`
	Views      int64     `gorm:"column:views;not null;default:0" json:"views"`
	Likes      int64     `gorm:"column:likes;not null;default:0" json:"likes"`
	Comments   int64     `gorm:"column:comments;not null;default:0" json:"comments"`
	Shares     int64     `gorm:"column:shares;not null;default:0" json:"shares"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null;index" json:"recorded_at"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (VideoMetric) TableName() string { return "video_metric" }

// EngagementRate is (likes+comments+shares)/views, zero when views is zero.
func (m *VideoMetric) EngagementRate() float64 {
	if m == nil || m.Views <= 0 {
		return 0
	}
	return float64(m.Likes+m.Comments+m.Shares) / float64(m.Views)
}
