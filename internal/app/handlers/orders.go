package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/naol728/rms/internal/auth/authmiddleware"
	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/service"
	"github.com/naol728/rms/internal/storage"
)

type CheckoutRequestBody struct {
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone"`
	TableID       *int64 `json:"table_id"`
	Notes         string `json:"notes"`
}

// CheckoutResponse carries the durable order and, when the table could
// not be flipped to occupied, a non-fatal warning.
type CheckoutResponse struct {
	Order   *models.Order `json:"order"`
	Warning string        `json:"warning,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CheckoutHandler handles POST /api/orders: converts the caller's cart
// into an order.
func CheckoutHandler(log *slog.Logger, checkoutService service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := authmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req CheckoutRequestBody
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

		result, err := checkoutService.Checkout(r.Context(), service.CheckoutRequest{
			UserID:        userID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			TableID:       req.TableID,
			Notes:         req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCustomerNameRequired):
				http.Error(w, "customer name is required", http.StatusBadRequest)
			case errors.Is(err, service.ErrEmptyCart):
				http.Error(w, "cart is empty", http.StatusBadRequest)
			default:
				logger.Error("checkout failed", slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(CheckoutResponse{
			Order:   result.Order,
			Warning: result.TableWarning,
		}); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// ListOrdersHandler handles GET /api/orders
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		orders, err := orderService.ListOrders(r.Context())
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if orders == nil {
			orders = []*models.Order{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(orders); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// MyOrdersHandler handles GET /api/orders/my: only the caller's own
// orders.
func MyOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MyOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := authmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orders, err := orderService.ListMyOrders(r.Context(), userID)
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if orders == nil {
			orders = []*models.Order{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(orders); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// OrderLinesHandler handles GET /api/orders/{id}/items
func OrderLinesHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OrderLinesHandler"
		logger := log.With(slog.String("op", op))

		orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		lines, err := orderService.OrderLines(r.Context(), orderID)
		if err != nil {
			logger.Error("failed to get order lines", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if lines == nil {
			lines = []*models.OrderLine{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lines); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// UpdateOrderStatusHandler handles PATCH /api/orders/{id}/status
func UpdateOrderStatusHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateOrderStatusHandler"
		logger := log.With(slog.String("op", op))

		orderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req UpdateStatusRequest
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

		if err := orderService.Transition(r.Context(), orderID, req.Status); err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidStatus):
				http.Error(w, "unrecognized order status", http.StatusBadRequest)
			case errors.Is(err, storage.ErrOrderNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			default:
				logger.Error("failed to update status", slog.Any("error", err))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// OrderStatusesHandler handles GET /api/orders/statuses: the fixed list
// for selection controls.
func OrderStatusesHandler(orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(orderService.Statuses())
	}
}
