package models

import "time"

type LeaderboardPeriod string

const (
	PeriodAllTime LeaderboardPeriod = "ALL_TIME"
	PeriodMonthly LeaderboardPeriod = "MONTHLY"
)

func (p LeaderboardPeriod) IsValid() bool {
	return p == PeriodAllTime || p == PeriodMonthly
}

// LeaderboardEntry is a derived, recomputable cache of a user's aggregated
// impact for one scoring period. Never the source of truth: always rebuildable
// from Activity records. One row per (user, period).
type LeaderboardEntry struct {
	UserID string            `gorm:"primaryKey;type:text" json:"userId"`
	Period LeaderboardPeriod `gorm:"primaryKey;type:text" json:"period"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	TreesPlanted      int     `gorm:"default:0" json:"treesPlanted"`
	PlasticRecycled   float64 `gorm:"default:0" json:"plasticRecycled"` // kg
	TotalCarbonOffset float64 `gorm:"default:0" json:"totalCarbonOffset"`
	ImpactScore       int     `gorm:"default:0" json:"impactScore"`

	LastUpdated time.Time `json:"lastUpdated"`

	// Rank is assigned at read time, never persisted.
	Rank int `gorm:"-" json:"rank"`
}
