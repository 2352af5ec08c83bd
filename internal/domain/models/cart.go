package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one row of a user's active cart: a distinct menu item and
// its quantity. Name, description, image and unit price are captured at
// add time for display and are not re-synced when the menu item is
// edited later.
type CartLine struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	MenuItemID  int64           `json:"menu_item_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	UnitPrice   decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
}

// LineTotal is quantity x captured unit price. Never persisted.
func (l *CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
