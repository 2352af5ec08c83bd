package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a submitted order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses returns the fixed list of recognized statuses, in
// lifecycle order, for populating selection controls.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusServed, StatusCancelled}
}

// Valid reports whether s is one of the five recognized statuses. The
// workflow checks membership only; it does not forbid regressions such
// as served back to pending.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusServed, StatusCancelled:
		return true
	}
	return false
}

// Order is a persisted checkout result. Totals are computed once at
// creation and never recomputed, even if menu prices change afterwards.
type Order struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"order_number"`
	TableID       *int64          `json:"table_id,omitempty"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Status        OrderStatus     `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Notes         string          `json:"notes"`
	WaiterID      int64           `json:"waiter_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderLine is one item of an order. UnitPrice is the price captured at
// order time and must not change retroactively.
type OrderLine struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"order_id"`
	MenuItemID   int64           `json:"menu_item_id"`
	MenuItemName string          `json:"menu_item_name"` // filled via JOIN with menu_items
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
}
