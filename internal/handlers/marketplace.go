package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pushp314/ecotrack-backend/internal/models"
	"github.com/pushp314/ecotrack-backend/internal/services"
)

type PlaceOrderRequest struct {
	CarbonCreditID *string `json:"carbonCreditId"`
	Type           string  `json:"type" binding:"required"`
	Amount         float64 `json:"amount" binding:"required"`
	PricePerTon    float64 `json:"pricePerTon" binding:"required"`
	PaymentMethod  string  `json:"paymentMethod"`
}

// GetOrders lists marketplace orders, optionally filtered by type and status.
func GetOrders(c *gin.Context) {
	orderType := models.OrderType(strings.ToUpper(c.Query("type")))
	status := models.OrderStatus(strings.ToUpper(c.Query("status")))

	orders, err := services.GetOrders(orderType, status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// CreateOrder places a buy or sell order for the authenticated user.
func CreateOrder(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	order, err := services.PlaceOrder(services.PlaceOrderInput{
		UserID:         userID,
		CarbonCreditID: req.CarbonCreditID,
		Type:           models.OrderType(strings.ToUpper(req.Type)),
		Amount:         req.Amount,
		PricePerTon:    req.PricePerTon,
		PaymentMethod:  req.PaymentMethod,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Marketplace order created successfully",
		"order":   order,
	})
}

// CancelOrder cancels the caller's open order.
func CancelOrder(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	order, err := services.CancelOrder(c.Param("id"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled",
		"order":   order,
	})
}

// FillOrder executes a listed sell order with the caller as buyer.
func FillOrder(c *gin.Context) {
	userID, ok := authedUserID(c)
	if !ok {
		return
	}

	order, err := services.FillOrder(c.Param("id"), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order filled",
		"order":   order,
	})
}
