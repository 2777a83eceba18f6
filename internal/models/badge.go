package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BadgeCategory string

const (
	BadgeCategoryImpact    BadgeCategory = "IMPACT"
	BadgeCategoryPlanting  BadgeCategory = "PLANTING"
	BadgeCategoryRecycling BadgeCategory = "RECYCLING"
)

type Badge struct {
	ID          string        `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt   time.Time     `json:"createdAt"`
	Name        string        `gorm:"uniqueIndex" json:"name"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Category    BadgeCategory `gorm:"type:text" json:"category"`
	Condition   string        `json:"condition"` // e.g. "total_offset"
	Threshold   float64       `json:"threshold"`
}

func (b *Badge) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return
}

// UserBadge is a per-user grant. The composite primary key makes a duplicate
// grant a constraint violation rather than a second row.
type UserBadge struct {
	UserID   string    `gorm:"primaryKey;type:text" json:"userId"`
	BadgeID  string    `gorm:"primaryKey;type:text" json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}
