package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/domain"  // Importing domain models
	"storefront/internal/service" // Business logic

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal prices
	"github.com/sirupsen/logrus"    // Logging library
)

// ShippingRequest carries the delivery details of an order
type ShippingRequest struct {
	FullName string `json:"fullName" binding:"required"`    // Recipient name
	Email    string `json:"email" binding:"required,email"` // Contact email
	Phone    string `json:"phone"`                          // Contact phone
	Address  string `json:"address" binding:"required"`     // Street address
	City     string `json:"city" binding:"required"`        // City
	ZipCode  string `json:"zipCode"`                        // Postal code
	Country  string `json:"country" binding:"required"`     // Country
}

// OrderItemRequest is one submitted order line. The storefront sends the item id as "id".
type OrderItemRequest struct {
	ID       uint            `json:"id"`        // Item id
	ItemID   uint            `json:"item_id"`   // Item id, alternate spelling
	Name     string          `json:"name"`      // Item name at purchase time
	Price    decimal.Decimal `json:"price"`     // Unit price at purchase time
	Quantity int             `json:"quantity"`  // Units bought
	ImageURL string          `json:"image_url"` // Image location
}

// CreateOrderRequest places an order from submitted lines
type CreateOrderRequest struct {
	ShippingRequest
	Items []OrderItemRequest `json:"items"` // Purchased lines
}

func (s ShippingRequest) toDomain() domain.Shipping {
	return domain.Shipping{
		FullName: s.FullName,
		Email:    s.Email,
		Phone:    s.Phone,
		Address:  s.Address,
		City:     s.City,
		ZipCode:  s.ZipCode,
		Country:  s.Country,
	}
}

// CreateOrderHandler snapshots the submitted lines into an order
func CreateOrderHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		var req CreateOrderRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		items := make([]domain.OrderItem, 0, len(req.Items)) // Map request lines to the snapshot
		for _, it := range req.Items {
			id := it.ItemID
			if id == 0 {
				id = it.ID
			}
			items = append(items, domain.OrderItem{
				ItemID:   id,
				Name:     it.Name,
				Price:    it.Price,
				Quantity: it.Quantity,
				ImageURL: it.ImageURL,
			})
		}
		order, err := orders.Create(c.Request.Context(), userID, req.toDomain(), items)
		if err != nil {
			respondError(c, err, "Failed to create order")
			return
		}
		logOrder(order, "Order created")
		c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": order})
	}
}

// CheckoutHandler turns the caller's cart into an order and empties the cart
func CheckoutHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		var req ShippingRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		order, err := orders.Checkout(c.Request.Context(), userID, req.toDomain())
		if err != nil {
			respondError(c, err, "Failed to check out")
			return
		}
		logOrder(order, "Cart checked out")
		c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully", "order": order})
	}
}

// ListOrdersHandler returns the caller's orders, newest first
func ListOrdersHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		list, err := orders.ListForUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// ClearOrdersHandler deletes all of the caller's orders
func ClearOrdersHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		n, err := orders.ClearForUser(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "Failed to clear orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User orders cleared successfully", "deleted": n})
	}
}

func logOrder(order *domain.Order, msg string) {
	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,                         // Order id
		"user_id":  order.UserID,                     // Buyer
		"total":    order.TotalAmount.StringFixed(2), // Order total
		"lines":    len(order.Items),                 // Number of lines
	}).Info(msg)
}
