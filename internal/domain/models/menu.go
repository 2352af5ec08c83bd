package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem represents a dish available for ordering. The cart never
// mutates menu items; administrative edits go through MenuService.
type MenuItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id"`
	Category    string          `json:"category"` // category name; filled via JOIN with categories
	ImageURL    string          `json:"image_url"`
	IsAvailable bool            `json:"is_available"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Category groups menu items for filtering
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}
