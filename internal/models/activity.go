package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityTreePlanting     ActivityType = "TREE_PLANTING"
	ActivityPlasticRecycling ActivityType = "PLASTIC_RECYCLING"
)

// IsValid reports whether the activity type is part of the closed set.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTreePlanting, ActivityPlasticRecycling:
		return true
	}
	return false
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// Activity is one recorded eco-action. Immutable once verified except for the
// verification status transition itself.
type Activity struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID string `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Type         ActivityType `gorm:"type:text;not null" json:"type"`
	CarbonOffset float64      `gorm:"not null" json:"carbonOffset"` // tons CO2

	// Free-form JSON blobs, stored verbatim. Metadata is decoded per activity
	// type (treeCount for planting, weight for recycling).
	Location *string `json:"location,omitempty"`
	Metadata *string `json:"metadata,omitempty"`

	VerificationStatus VerificationStatus `gorm:"type:text;default:'PENDING'" json:"verificationStatus"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// activityMeta is the union of per-type metadata payloads.
type activityMeta struct {
	TreeCount *int     `json:"treeCount"`
	Weight    *float64 `json:"weight"`
}

func (a *Activity) decodeMeta() activityMeta {
	var meta activityMeta
	if a.Metadata != nil {
		// Malformed metadata degrades to the defaults, same as absent.
		_ = json.Unmarshal([]byte(*a.Metadata), &meta)
	}
	return meta
}

// TreeCount returns the number of trees a TREE_PLANTING activity claims,
// defaulting to 1 when metadata is absent.
func (a *Activity) TreeCount() int {
	meta := a.decodeMeta()
	if meta.TreeCount == nil {
		return 1
	}
	return *meta.TreeCount
}

// RecycledWeight returns the recycled weight a PLASTIC_RECYCLING activity
// claims, defaulting to 1 when metadata is absent.
func (a *Activity) RecycledWeight() float64 {
	meta := a.decodeMeta()
	if meta.Weight == nil {
		return 1
	}
	return *meta.Weight
}
