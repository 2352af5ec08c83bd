package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/storage"
	"github.com/shopspring/decimal"
)

// CartSummary is derived from the current lines on every read; totals
// are never persisted.
type CartSummary struct {
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CartService keeps one user's cart consistent with the database: one
// row per distinct menu item. Every mutation is immediately durable and
// returns the re-fetched authoritative state so callers never total up
// stale lines.
type CartService interface {
	GetCart(ctx context.Context, userID int64) ([]*models.CartLine, error)
	AddItem(ctx context.Context, userID, menuItemID int64, quantity int) ([]*models.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) ([]*models.CartLine, error)
	RemoveItem(ctx context.Context, userID, lineID int64) ([]*models.CartLine, error)
	Clear(ctx context.Context, userID int64) error
	Summarize(lines []*models.CartLine) CartSummary
}

type cartService struct {
	log      *slog.Logger
	cartRepo storage.CartStorage
	menuRepo storage.MenuStorage
}

func NewCartService(log *slog.Logger, cartRepo storage.CartStorage, menuRepo storage.MenuStorage) CartService {
	return &cartService{
		log:      log,
		cartRepo: cartRepo,
		menuRepo: menuRepo,
	}
}

// GetCart returns all lines for the user. An unknown user simply has an
// empty cart, not an error.
func (s *cartService) GetCart(ctx context.Context, userID int64) ([]*models.CartLine, error) {
	const op = "service.CartService.GetCart"
	lines, err := s.cartRepo.GetCartLines(ctx, userID)
	if err != nil {
		s.log.Error("failed to get cart", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if lines == nil {
		lines = []*models.CartLine{}
	}
	return lines, nil
}

// AddItem increments the existing line for (user, item) or inserts a
// new one, capturing the item's current price, description and image
// for display. Those captured fields are intentionally never re-synced
// when the menu item is edited later.
func (s *cartService) AddItem(ctx context.Context, userID, menuItemID int64, quantity int) ([]*models.CartLine, error) {
	const op = "service.CartService.AddItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("menuItemID", menuItemID))

	if quantity <= 0 {
		quantity = 1
	}

	item, err := s.menuRepo.GetMenuItemByID(ctx, menuItemID)
	if err != nil {
		if errors.Is(err, storage.ErrMenuItemNotFound) {
			logger.Warn("menu item not found")
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logger.Error("failed to get menu item", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get menu item: %w", op, err)
	}

	existing, err := s.cartRepo.GetLineForItem(ctx, userID, menuItemID)
	switch {
	case err == nil:
		if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			logger.Error("failed to increment quantity", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to increment quantity: %w", op, err)
		}
	case errors.Is(err, storage.ErrCartLineNotFound):
		line := &models.CartLine{
			UserID:      userID,
			MenuItemID:  menuItemID,
			Name:        item.Name,
			Description: item.Description,
			ImageURL:    item.ImageURL,
			UnitPrice:   item.Price,
			Quantity:    quantity,
		}
		if _, err := s.cartRepo.InsertLine(ctx, line); err != nil {
			logger.Error("failed to insert cart line", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to insert cart line: %w", op, err)
		}
	default:
		logger.Error("failed to look up cart line", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to look up cart line: %w", op, err)
	}

	logger.Info("item added to cart", slog.Int("quantity", quantity))
	return s.GetCart(ctx, userID)
}

// UpdateQuantity sets the line's quantity to an absolute value. Zero or
// negative delegates to RemoveItem, so a quantity never persists below 1.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) ([]*models.CartLine, error) {
	const op = "service.CartService.UpdateQuantity"

	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, lineID)
	}

	if err := s.cartRepo.UpdateQuantity(ctx, lineID, quantity); err != nil {
		if errors.Is(err, storage.ErrCartLineNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Error("failed to update quantity", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update quantity: %w", op, err)
	}
	return s.GetCart(ctx, userID)
}

// RemoveItem deletes the line. Removing an already-absent line is fine.
func (s *cartService) RemoveItem(ctx context.Context, userID, lineID int64) ([]*models.CartLine, error) {
	const op = "service.CartService.RemoveItem"
	if err := s.cartRepo.DeleteLine(ctx, lineID); err != nil {
		s.log.Error("failed to remove cart line", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to remove cart line: %w", op, err)
	}
	return s.GetCart(ctx, userID)
}

// Clear deletes every line for the user. Idempotent.
func (s *cartService) Clear(ctx context.Context, userID int64) error {
	const op = "service.CartService.Clear"
	if err := s.cartRepo.DeleteAllForUser(ctx, userID); err != nil {
		s.log.Error("failed to clear cart", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: failed to clear cart: %w", op, err)
	}
	return nil
}

// Summarize derives the item count and total price from the lines.
func (s *cartService) Summarize(lines []*models.CartLine) CartSummary {
	summary := CartSummary{TotalPrice: decimal.Zero}
	for _, line := range lines {
		summary.TotalItems += line.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(line.LineTotal())
	}
	return summary
}
