package types

import (
	"time"

	"github.com/google/uuid"
)

type IdeaFolder struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	Account   *Account  `gorm:"foreignKey:AccountID;references:ID" json:"account,omitempty"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (IdeaFolder) TableName() string { return "idea_folder" }
