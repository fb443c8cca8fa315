package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/service" // Business logic

	"github.com/gin-gonic/gin" // Gin web framework
)

// AddToCartRequest adds units of an item to the cart
type AddToCartRequest struct {
	ItemID   uint `json:"item_id" binding:"required"` // Item to add
	Quantity *int `json:"quantity"`                   // Defaults to 1
}

// UpdateCartRequest overwrites the quantity of a cart line
type UpdateCartRequest struct {
	Quantity int `json:"quantity"` // New quantity, at least 1
}

// AddToCartHandler merges an item into the caller's cart
func AddToCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		var req AddToCartRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		qty := 1 // Default quantity
		if req.Quantity != nil {
			qty = *req.Quantity
		}
		line, err := carts.Add(c.Request.Context(), userID, req.ItemID, qty)
		if err != nil {
			respondError(c, err, "Failed to add to cart")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "cartItem": line})
	}
}

// GetCartHandler returns the caller's cart joined with item details
func GetCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		entries, err := carts.Get(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "Failed to fetch cart items")
			return
		}
		c.JSON(http.StatusOK, gin.H{"cartItems": entries})
	}
}

// UpdateCartHandler sets the quantity of one line
func UpdateCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		itemID, ok := parseID(c, "item_id") // Item id from the path
		if !ok {
			return
		}
		var req UpdateCartRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		line, err := carts.Update(c.Request.Context(), userID, itemID, req.Quantity)
		if err != nil {
			respondError(c, err, "Failed to update cart item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cartItem": line})
	}
}

// RemoveFromCartHandler deletes one line
func RemoveFromCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		itemID, ok := parseID(c, "item_id") // Item id from the path
		if !ok {
			return
		}
		if err := carts.Remove(c.Request.Context(), userID, itemID); err != nil {
			respondError(c, err, "Failed to remove cart item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
	}
}

// ClearCartHandler empties the cart and returns what was removed
func ClearCartHandler(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		removed, err := carts.Clear(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "Failed to clear cart")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "removed": removed})
	}
}
