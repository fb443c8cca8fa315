package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one (user, item) row of a cart. The composite key keeps a single row per pair.
type CartLine struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	ItemID    uint      `gorm:"primaryKey;autoIncrement:false" json:"item_id"`
	Quantity  int       `gorm:"not null;check:chk_cart_lines_quantity,quantity >= 1" json:"quantity"`
	ImageURL  string    `gorm:"size:1024" json:"image_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartEntry is a cart line joined with its catalog item
type CartEntry struct {
	ItemID   uint            `json:"item_id"`
	Quantity int             `json:"quantity"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}
