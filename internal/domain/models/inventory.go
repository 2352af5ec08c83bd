package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem tracks stock of an ingredient or supply.
type InventoryItem struct {
	ID            int64           `json:"id"`
	ItemName      string          `json:"item_name"`
	Category      string          `json:"category"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	Unit          string          `json:"unit"`
	Supplier      string          `json:"supplier"`
	LastRestocked time.Time       `json:"last_restocked"`
}

// LowStock reports whether current stock has fallen to or below the
// minimum level.
func (i *InventoryItem) LowStock() bool {
	return i.CurrentStock.LessThanOrEqual(i.MinStockLevel)
}
