package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/service" // Business logic

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// AdminRegisterRequest is the body of the one-time admin registration
type AdminRegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`   // Admin display name
	Email    string `json:"email" binding:"required,email"`    // Must be a valid email
	Password string `json:"password" binding:"required,min=8"` // At least 8 characters
}

// AdminRegisterHandler creates the admin account. Only one admin may exist.
func AdminRegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminRegisterRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		user, err := auth.RegisterAdmin(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, err, "Failed to register admin")
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("Admin registered")
		c.JSON(http.StatusCreated, gin.H{
			"message": "Admin created successfully", // Success message
			"user":    newUserResponse(user),        // Created account
		})
	}
}

// AdminLoginHandler authenticates an admin and returns a JWT token
func AdminLoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		sess, err := auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, "Failed to log in")
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: sess.Token, User: newUserResponse(sess.User)})
	}
}
