package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"storefront/internal/middleware" // Request id and auth helpers
	"storefront/internal/service"    // Service errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps a service error to its HTTP status; unknown errors are 500
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrCartLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrAdminExists),
		errors.Is(err, service.ErrInvalidResetCode),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidOrderItem):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error body. Internal errors are logged
// and replaced by the generic message so nothing leaks to the client.
func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey), // Request id
			"path":       c.Request.URL.Path,                   // Request path
			"error":      err,                                  // Underlying error
		}).Error(message)
		_ = c.Error(err) // Surface in the request log
		c.JSON(status, gin.H{"error": message})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireUser returns the authenticated user id or answers 401
func requireUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c) // Get userID from context
	if !ok {
		// If not, return unauthorized
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}

// bindJSON binds the request body or answers 400
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return false
	}
	return true
}
