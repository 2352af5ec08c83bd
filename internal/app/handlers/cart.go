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

// CartResponse is the authoritative cart state returned after every
// read and mutation: the lines plus derived totals.
type CartResponse struct {
	Lines   []*models.CartLine  `json:"lines"`
	Summary service.CartSummary `json:"summary"`
}

type AddToCartRequest struct {
	MenuItemID int64 `json:"menu_item_id" validate:"required"`
	Quantity   int   `json:"quantity"`
}

type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

func writeCart(w http.ResponseWriter, logger *slog.Logger, cartService service.CartService, lines []*models.CartLine) {
	resp := CartResponse{
		Lines:   lines,
		Summary: cartService.Summarize(lines),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

// GetCartHandler handles GET /api/cart
func GetCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := authmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lines, err := cartService.GetCart(r.Context(), userID)
		if err != nil {
			logger.Error("failed to get cart", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		writeCart(w, logger, cartService, lines)
	}
}

// AddToCartHandler handles POST /api/cart
func AddToCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddToCartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := authmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req AddToCartRequest
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

		lines, err := cartService.AddItem(r.Context(), userID, req.MenuItemID, req.Quantity)
		if err != nil {
			if errors.Is(err, storage.ErrMenuItemNotFound) {
				http.Error(w, "menu item not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to add item to cart", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		writeCart(w, logger, cartService, lines)
	}
}

// UpdateCartLineHandler handles PUT /api/cart/{id}. Quantity zero or
// below removes the line.
func UpdateCartLineHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCartLineHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := authmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lineID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req UpdateCartLineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		lines, err := cartService.UpdateQuantity(r.Context(), userID, lineID, req.Quantity)
		if err != nil {
			if errors.Is(err, storage.ErrCartLineNotFound) {
				http.Error(w, "cart line not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update cart line", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		writeCart(w, logger, cartService, lines)
	}
}

// RemoveCartLineHandler handles DELETE /api/cart/{id}
func RemoveCartLineHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveCartLineHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := authmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lineID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		lines, err := cartService.RemoveItem(r.Context(), userID, lineID)
		if err != nil {
			logger.Error("failed to remove cart line", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		writeCart(w, logger, cartService, lines)
	}
}

// ClearCartHandler handles DELETE /api/cart
func ClearCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ClearCartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := authmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := cartService.Clear(r.Context(), userID); err != nil {
			logger.Error("failed to clear cart", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
