package models_test

import (
	"testing"

	"github.com/naol728/rms/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range models.OrderStatuses() {
		assert.True(t, s.Valid(), "status %q should be recognized", s)
	}
	assert.False(t, models.OrderStatus("done").Valid())
	assert.False(t, models.OrderStatus("").Valid())
	assert.False(t, models.OrderStatus("Pending").Valid(), "statuses are case-sensitive")
}

func TestCartLineTotal(t *testing.T) {
	line := &models.CartLine{
		UnitPrice: decimal.RequireFromString("10.50"),
		Quantity:  3,
	}
	assert.True(t, line.LineTotal().Equal(decimal.RequireFromString("31.50")))
}

func TestInventoryLowStock(t *testing.T) {
	item := &models.InventoryItem{
		CurrentStock:  decimal.RequireFromString("5"),
		MinStockLevel: decimal.RequireFromString("10"),
	}
	assert.True(t, item.LowStock())

	item.CurrentStock = decimal.RequireFromString("10")
	assert.True(t, item.LowStock(), "stock exactly at the minimum counts as low")

	item.CurrentStock = decimal.RequireFromString("10.01")
	assert.False(t, item.LowStock())
}
