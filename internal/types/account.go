package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Niche is the content category an account belongs to. Free-form values are
// rejected by the account service; the set matches the onboarding picker.
const (
	NicheFitness   = "fitness"
	NicheBeauty    = "beauty"
	NicheGaming    = "gaming"
	NicheFood      = "food"
	NicheEducation = "education"
	NicheLifestyle = "lifestyle"
	NicheTech      = "tech"
	NicheOther     = "other"
)

type Account struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string         `gorm:"column:name;not null" json:"name"`
	Niche          string         `gorm:"column:niche;not null;index" json:"niche"`
	Platforms      datatypes.JSON `gorm:"column:platforms" json:"platforms"`
	Keywords       datatypes.JSON `gorm:"column:keywords" json:"keywords"`
	InitialMetrics datatypes.JSON `gorm:"column:initial_metrics" json:"initial_metrics,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Account) TableName() string { return "account" }

func ValidNiche(niche string) bool {
	switch niche {
	case NicheFitness, NicheBeauty, NicheGaming, NicheFood,
		NicheEducation, NicheLifestyle, NicheTech, NicheOther:
		return true
	default:
		return false
	}
}
