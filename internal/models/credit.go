package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreditStatus string

const (
	CreditActive  CreditStatus = "ACTIVE"
	CreditForSale CreditStatus = "FOR_SALE"
	CreditSold    CreditStatus = "SOLD"
	CreditRetired CreditStatus = "RETIRED"
)

// creditTransitions is the closed transition table for a credit's lifecycle.
// FOR_SALE -> ACTIVE exists only for the order-cancellation path.
var creditTransitions = map[CreditStatus][]CreditStatus{
	CreditActive:  {CreditForSale, CreditRetired},
	CreditForSale: {CreditSold, CreditActive, CreditRetired},
	CreditSold:    {},
	CreditRetired: {},
}

// CanTransition reports whether moving from s to next is legal.
func (s CreditStatus) CanTransition(next CreditStatus) bool {
	for _, allowed := range creditTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s CreditStatus) IsTerminal() bool {
	return len(creditTransitions[s]) == 0
}

// CarbonCredit is a tradeable unit of offset. Never deleted; terminal states
// are SOLD and RETIRED.
type CarbonCredit struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID string `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// At most one credit per originating activity, enforced by the unique index.
	ActivityID *string   `gorm:"uniqueIndex" json:"activityId,omitempty"`
	Activity   *Activity `gorm:"foreignKey:ActivityID" json:"activity,omitempty"`

	Amount float64      `gorm:"not null" json:"amount"` // tons CO2
	Status CreditStatus `gorm:"type:text;default:'ACTIVE'" json:"status"`

	Price *float64 `json:"price,omitempty"` // set while listed for sale

	// External token reference (on-chain settlement happens elsewhere).
	TokenID *string `json:"tokenId,omitempty"`
}

func (cc *CarbonCredit) BeforeCreate(tx *gorm.DB) (err error) {
	if cc.ID == "" {
		cc.ID = uuid.New().String()
	}
	return
}
