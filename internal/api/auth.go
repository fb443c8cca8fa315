package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/domain"  // Importing domain models
	"storefront/internal/service" // Business logic

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RegisterRequest is the body of a customer registration
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,max=100"`     // Display name must be provided
	Email       string `json:"email" binding:"required,email"`          // Must be a valid email
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=50"` // Optional phone number
	Password    string `json:"password" binding:"required,min=8"`       // At least 8 characters
}

// LoginRequest is the body of both login endpoints
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID          uint   `json:"id"`           // User ID
	Username    string `json:"username"`     // Display name
	Email       string `json:"email"`        // Email address
	PhoneNumber string `json:"phone_number"` // Phone number
	Role        string `json:"role"`         // User role
}

// AuthResponse is returned on a successful login
type AuthResponse struct {
	Token string       `json:"token"` // JWT token
	User  UserResponse `json:"user"`  // Logged in account
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Email: u.Email, PhoneNumber: u.PhoneNumber, Role: u.Role}
}

// RegisterHandler creates a customer account
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		user, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Username:    req.Username,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Password:    req.Password,
		})
		if err != nil {
			// Duplicate email is a 400, anything else a 500
			respondError(c, err, "Failed to register user")
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": user.ID}).Info("User registered")
		c.JSON(http.StatusCreated, newUserResponse(user)) // Return the created account
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		sess, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, "Failed to log in")
			return
		}
		// Return the token and the account
		c.JSON(http.StatusOK, AuthResponse{Token: sess.Token, User: newUserResponse(sess.User)})
	}
}

// RequestResetRequest starts a password reset
type RequestResetRequest struct {
	Email string `json:"email" binding:"required,email"` // Account email
}

// VerifyCodeRequest checks a reset code
type VerifyCodeRequest struct {
	Email string `json:"email" binding:"required,email"` // Account email
	Code  string `json:"code" binding:"required"`        // Emailed code
}

// ResetPasswordRequest completes a password reset
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`       // Account email
	Code        string `json:"code" binding:"required"`              // Emailed code
	NewPassword string `json:"newPassword" binding:"required,min=8"` // Replacement password
}

// RequestResetHandler emails a reset code. The answer is the same whether or not the email is registered.
func RequestResetHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RequestResetRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		if err := auth.RequestReset(c.Request.Context(), req.Email); err != nil {
			respondError(c, err, "Failed to send reset code")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "If the email is registered, a reset code has been sent"})
	}
}

// VerifyCodeHandler checks a reset code without consuming it
func VerifyCodeHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyCodeRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		if err := auth.VerifyCode(c.Request.Context(), req.Email, req.Code); err != nil {
			respondError(c, err, "Verification failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Code verified successfully"})
	}
}

// ResetPasswordHandler sets a new password for a verified code
func ResetPasswordHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest // Bind JSON request to struct
		if !bindJSON(c, &req) {
			return
		}
		if err := auth.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
			respondError(c, err, "Failed to reset password")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
	}
}
