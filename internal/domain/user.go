package domain

import "time"

// Roles a user can hold
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User Model
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`                          // Primary key
	Username     string     `gorm:"not null;size:100" json:"username"`             // Display name
	Email        string     `gorm:"uniqueIndex;not null;size:255" json:"email"`    // Unique login email
	PhoneNumber  string     `gorm:"size:50" json:"phone_number"`                   // Optional phone number
	Password     string     `gorm:"not null" json:"-"`                             // Hashed password
	Role         string     `gorm:"not null;size:20;default:customer" json:"role"` // Role: customer or admin
	ResetCode    *string    `gorm:"size:10" json:"-"`                              // Pending password reset code
	ResetExpires *time.Time `json:"-"`                                             // Expiry of the reset code
	CreatedAt    time.Time  `json:"created_at"`                                    // Registration time
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
