package middleware

import (
	"context"  // Context for the user lookup
	"net/http" // HTTP status codes

	"storefront/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserLookup loads an account by id
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// AdminOnlyMiddleware requires the admin role in the token and confirms it
// against the stored account, so a demoted admin loses access before the token expires.
func AdminOnlyMiddleware(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := UserID(c) // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Cheap check on the token claim first
		if c.GetString(RoleKey) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		user, err := users.FindByID(c.Request.Context(), userID) // Fetch user from database
		if err != nil || !user.IsAdmin() {
			// If user not found, any error or not an admin, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
