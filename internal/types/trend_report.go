package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TrendReport is an append-only generated report. Content is opaque
// structured JSON from the generation provider; rows are never mutated.
type TrendReport struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	Account     *Account       `gorm:"foreignKey:AccountID;references:ID" json:"account,omitempty"`
	Provider    string         `gorm:"column:provider;not null" json:"provider"`
	Content     datatypes.JSON `gorm:"column:content" json:"content"`
	GeneratedAt time.Time      `gorm:"column:generated_at;not null;index" json:"generated_at"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (TrendReport) TableName() string { return "trend_report" }
