package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderType string

const (
	OrderBuy  OrderType = "BUY"
	OrderSell OrderType = "SELL"
)

func (t OrderType) IsValid() bool {
	return t == OrderBuy || t == OrderSell
}

type OrderStatus string

// Order status is monotonic: OPEN -> FILLED or OPEN -> CANCELLED, both terminal.
const (
	OrderOpen      OrderStatus = "OPEN"
	OrderFilled    OrderStatus = "FILLED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type MarketplaceOrder struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID string `gorm:"index;not null" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	// Required for SELL orders, absent for standing BUY orders.
	CarbonCreditID *string       `gorm:"index" json:"carbonCreditId,omitempty"`
	CarbonCredit   *CarbonCredit `gorm:"foreignKey:CarbonCreditID" json:"carbonCredit,omitempty"`

	Type        OrderType   `gorm:"type:text;not null" json:"type"`
	Amount      float64     `gorm:"not null" json:"amount"`
	PricePerTon float64     `gorm:"not null" json:"pricePerTon"`
	Status      OrderStatus `gorm:"type:text;default:'OPEN'" json:"status"`

	PaymentMethod string `json:"paymentMethod,omitempty"`

	// Set when the order fills: the user on the other side of the trade.
	CounterpartyID *string `json:"counterpartyId,omitempty"`
}

func (o *MarketplaceOrder) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
