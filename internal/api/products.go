package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"storefront/internal/service" // Business logic

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal prices
	"github.com/sirupsen/logrus"    // Logging library
)

// CreateProductRequest is the body of an admin product creation
type CreateProductRequest struct {
	Name     string           `json:"name" binding:"required"`      // Product name
	Price    *decimal.Decimal `json:"price" binding:"required"`     // Price, number or string
	Quantity int              `json:"quantity" binding:"gte=0"`     // Stock, defaults to 0
	ImageURL string           `json:"image_url" binding:"max=1024"` // Image location
	Category string           `json:"category" binding:"max=100"`   // Optional category
}

// ListProductsHandler returns the catalog, newest first
func ListProductsHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := catalog.List(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch products")
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// LatestProductsHandler returns the most recently added products
func LatestProductsHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := catalog.Latest(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch latest products")
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetProductHandler returns a single product
func GetProductHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id") // Product id from the path
		if !ok {
			return
		}
		item, err := catalog.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Failed to fetch product")
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// CreateProductHandler adds a product to the catalog
func CreateProductHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		item, err := catalog.Create(c.Request.Context(), service.NewItem{
			Name:     req.Name,
			Price:    *req.Price,
			Quantity: req.Quantity,
			ImageURL: req.ImageURL,
			Category: req.Category,
		})
		if err != nil {
			respondError(c, err, "Failed to create product")
			return
		}
		logrus.WithFields(logrus.Fields{"item_id": item.ID, "name": item.Name}).Info("Product created")
		c.JSON(http.StatusCreated, item)
	}
}

// parseID reads a positive numeric path parameter or answers 400
func parseID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || v == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}
