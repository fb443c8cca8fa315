package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a catalog product. Stock is exposed as "quantity" to match the storefront clients.
type Item struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"not null;size:255" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock     int             `gorm:"not null" json:"quantity"`
	ImageURL  string          `gorm:"size:1024" json:"image_url"`
	Category  *string         `gorm:"size:100" json:"category"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
}
