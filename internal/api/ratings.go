package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/service" // Business logic

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RatingRequest rates an item from 1 to 5
type RatingRequest struct {
	ItemID uint `json:"item_id" binding:"required"` // Rated item
	Rating int  `json:"rating" binding:"required"`  // Score, 1 to 5
}

// SubmitRatingHandler records the caller's rating and returns the new average
func SubmitRatingHandler(ratings *service.RatingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := requireUser(c)
		if !ok {
			return
		}
		var req RatingRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		avg, err := ratings.Submit(c.Request.Context(), userID, req.ItemID, req.Rating)
		if err != nil {
			respondError(c, err, "Failed to save rating")
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": userID, "item_id": req.ItemID, "rating": req.Rating}).Info("Rating saved")
		c.JSON(http.StatusOK, gin.H{"message": "Rating saved successfully", "average": avg})
	}
}

// ItemRatingsHandler returns the rating summary of one product
func ItemRatingsHandler(ratings *service.RatingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := parseID(c, "productId") // Product id from the path
		if !ok {
			return
		}
		summary, err := ratings.ListForItem(c.Request.Context(), itemID)
		if err != nil {
			respondError(c, err, "Failed to fetch ratings")
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// AllRatingsHandler returns rating summaries for every rated product
func AllRatingsHandler(ratings *service.RatingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := ratings.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch ratings")
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
