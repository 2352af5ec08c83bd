package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/service"
	"github.com/naol728/rms/internal/storage"
	"github.com/shopspring/decimal"
)

type InventoryItemRequest struct {
	ItemName      string          `json:"item_name" validate:"required"`
	Category      string          `json:"category"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	Unit          string          `json:"unit" validate:"required"`
	Supplier      string          `json:"supplier"`
}

// ListInventoryHandler handles GET /api/inventory (admin)
func ListInventoryHandler(log *slog.Logger, invService service.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListInventoryHandler"
		logger := log.With(slog.String("op", op))

		items, err := invService.ListInventory(r.Context())
		if err != nil {
			logger.Error("failed to list inventory", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []*models.InventoryItem{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(items); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// CreateInventoryItemHandler handles POST /api/inventory (admin)
func CreateInventoryItemHandler(log *slog.Logger, invService service.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateInventoryItemHandler"
		logger := log.With(slog.String("op", op))

		var req InventoryItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		created, err := invService.CreateItem(r.Context(), &models.InventoryItem{
			ItemName:      req.ItemName,
			Category:      req.Category,
			CurrentStock:  req.CurrentStock,
			MinStockLevel: req.MinStockLevel,
			Unit:          req.Unit,
			Supplier:      req.Supplier,
		})
		if err != nil {
			logger.Error("failed to create inventory item", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// UpdateInventoryItemHandler handles PUT /api/inventory/{id} (admin)
func UpdateInventoryItemHandler(log *slog.Logger, invService service.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateInventoryItemHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req InventoryItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		if err := invService.UpdateItem(r.Context(), &models.InventoryItem{
			ID:            id,
			ItemName:      req.ItemName,
			Category:      req.Category,
			CurrentStock:  req.CurrentStock,
			MinStockLevel: req.MinStockLevel,
			Unit:          req.Unit,
			Supplier:      req.Supplier,
		}); err != nil {
			if errors.Is(err, storage.ErrInventoryItemNotFound) {
				http.Error(w, "inventory item not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update inventory item", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteInventoryItemHandler handles DELETE /api/inventory/{id} (admin)
func DeleteInventoryItemHandler(log *slog.Logger, invService service.InventoryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteInventoryItemHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := invService.DeleteItem(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrInventoryItemNotFound) {
				http.Error(w, "inventory item not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to delete inventory item", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
