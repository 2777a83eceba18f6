package services

import (
	"github.com/pushp314/ecotrack-backend/internal/database"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/pkg/errors"
	"gorm.io/gorm"
)

// PlaceOrderInput carries everything needed to submit a buy or sell intent.
type PlaceOrderInput struct {
	UserID         string
	CarbonCreditID *string
	Type           models.OrderType
	Amount         float64
	PricePerTon    float64
	PaymentMethod  string
}

// PlaceOrder submits an order. A SELL order atomically flips the referenced
// credit ACTIVE -> FOR_SALE: either both the order row and the credit flip
// commit, or neither does. A BUY order carries no credit and stands OPEN until
// filled or cancelled.
func PlaceOrder(in PlaceOrderInput) (*models.MarketplaceOrder, error) {
	if !in.Type.IsValid() {
		return nil, errors.InvalidInput("Order type must be BUY or SELL")
	}
	if in.Amount <= 0 {
		return nil, errors.InvalidInput("Order amount must be positive")
	}
	if in.PricePerTon <= 0 {
		return nil, errors.InvalidInput("Price per ton must be positive")
	}

	var user models.User
	if err := database.DB.Select("id").First(&user, "id = ?", in.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("User not found")
		}
		return nil, errors.StorageUnavailable(err)
	}

	order := models.MarketplaceOrder{
		UserID:         in.UserID,
		CarbonCreditID: in.CarbonCreditID,
		Type:           in.Type,
		Amount:         in.Amount,
		PricePerTon:    in.PricePerTon,
		Status:         models.OrderOpen,
		PaymentMethod:  in.PaymentMethod,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if in.Type == models.OrderSell {
			if in.CarbonCreditID == nil {
				return errors.InvalidInput("Sell orders must reference a carbon credit")
			}

			credit, err := loadCredit(tx, *in.CarbonCreditID)
			if err != nil {
				return err
			}
			if credit.UserID != in.UserID {
				return errors.Forbidden("Carbon credit does not belong to user")
			}
			if credit.Status != models.CreditActive {
				return errors.InvalidState("Carbon credit is not active")
			}
		}

		if err := tx.Create(&order).Error; err != nil {
			return errors.StorageUnavailable(err)
		}

		if in.Type == models.OrderSell {
			if _, err := listForSale(tx, *in.CarbonCreditID, in.PricePerTon); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// CancelOrder transitions an OPEN order to CANCELLED. For sell orders the
// referenced credit reverts FOR_SALE -> ACTIVE in the same transaction, so it
// can be listed again. Concurrent cancel/fill on one order resolve to exactly
// one winner through the compare-and-set on order status.
func CancelOrder(orderID, userID string) (*models.MarketplaceOrder, error) {
	var order models.MarketplaceOrder
	if err := database.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Order not found")
		}
		return nil, errors.StorageUnavailable(err)
	}

	if order.UserID != userID {
		return nil, errors.Forbidden("Only the order owner can cancel it")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.MarketplaceOrder{}).
			Where("id = ? AND status = ?", orderID, models.OrderOpen).
			Update("status", models.OrderCancelled)
		if res.Error != nil {
			return errors.StorageUnavailable(res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.InvalidState("Order is no longer open")
		}

		if order.Type == models.OrderSell && order.CarbonCreditID != nil {
			res := tx.Model(&models.CarbonCredit{}).
				Where("id = ? AND status = ?", *order.CarbonCreditID, models.CreditForSale).
				Updates(map[string]interface{}{
					"status": models.CreditActive,
					"price":  nil,
				})
			if res.Error != nil {
				return errors.StorageUnavailable(res.Error)
			}
			if res.RowsAffected == 0 {
				return creditTransitionError(tx, *order.CarbonCreditID, "delist")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderCancelled
	return &order, nil
}

// FillOrder executes a trade: the counterparty buys the credit behind an OPEN
// sell order. Order status and credit ownership flip in one transaction; the
// compare-and-set on order status guarantees that of two racing fills exactly
// one succeeds and the other sees InvalidState.
func FillOrder(orderID, counterpartyID string) (*models.MarketplaceOrder, error) {
	var counterparty models.User
	if err := database.DB.Select("id").First(&counterparty, "id = ?", counterpartyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Counterparty user not found")
		}
		return nil, errors.StorageUnavailable(err)
	}

	var order models.MarketplaceOrder
	if err := database.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Order not found")
		}
		return nil, errors.StorageUnavailable(err)
	}

	// There is no automatic matching between standing buy and sell orders;
	// a buyer fills a specific listed sell order.
	if order.Type != models.OrderSell || order.CarbonCreditID == nil {
		return nil, errors.InvalidInput("Only sell orders can be filled directly")
	}
	if order.UserID == counterpartyID {
		return nil, errors.InvalidInput("Cannot fill your own order")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.MarketplaceOrder{}).
			Where("id = ? AND status = ?", orderID, models.OrderOpen).
			Updates(map[string]interface{}{
				"status":          models.OrderFilled,
				"counterparty_id": counterpartyID,
			})
		if res.Error != nil {
			return errors.StorageUnavailable(res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.InvalidState("Order is no longer open")
		}

		if _, err := transferOwnership(tx, *order.CarbonCreditID, counterpartyID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = models.OrderFilled
	order.CounterpartyID = &counterpartyID
	return &order, nil
}

// GetOrders lists orders, optionally filtered by type and status.
func GetOrders(orderType models.OrderType, status models.OrderStatus) ([]models.MarketplaceOrder, error) {
	query := database.DB.Model(&models.MarketplaceOrder{}).
		Preload("User").
		Preload("CarbonCredit").
		Preload("CarbonCredit.Activity")
	if orderType != "" {
		query = query.Where("type = ?", orderType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.MarketplaceOrder
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, errors.StorageUnavailable(err)
	}
	return orders, nil
}
