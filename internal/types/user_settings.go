package types

import (
	"time"

	"gorm.io/datatypes"
)

// Model-preference task categories.
const (
	SettingsCategoryChat     = "chat"
	SettingsCategoryCreative = "creative"
	SettingsCategoryAnalysis = "analysis"
)

// UserSettingsID is the fixed primary key of the singleton settings row.
const UserSettingsID = "default"

// UserSettings is a process-global singleton: model-preference selections
// per task category. Reset restores DefaultSettingsModels.
type UserSettings struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Models    datatypes.JSON `gorm:"column:models" json:"models"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (UserSettings) TableName() string { return "user_settings" }

// DefaultSettingsModels returns a fresh copy of the fixed defaults.
func DefaultSettingsModels() map[string]string {
	return map[string]string{
		SettingsCategoryChat:     "gpt-4o-mini",
		SettingsCategoryCreative: "gpt-4o",
		SettingsCategoryAnalysis: "gpt-4o",
	}
}

func ValidSettingsCategory(category string) bool {
	switch category {
	case SettingsCategoryChat, SettingsCategoryCreative, SettingsCategoryAnalysis:
		return true
	default:
		return false
	}
}
