package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/storage"
	"github.com/shopspring/decimal"
)

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrEmptyCart            = errors.New("cart is empty")
)

// taxRate is the fixed 8% applied to every order's subtotal.
var taxRate = decimal.New(8, -2)

// CheckoutRequest is the input for converting a cart into an order.
type CheckoutRequest struct {
	UserID        int64
	CustomerName  string
	CustomerPhone string
	TableID       *int64
	Notes         string
}

// CheckoutResult is the composite outcome: the created order plus a
// warning when the best-effort table reservation failed. The order is
// already durable whenever Checkout returns a result.
type CheckoutResult struct {
	Order        *models.Order
	TableWarning string
}

type CheckoutService interface {
	Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
}

type checkoutService struct {
	log       *slog.Logger
	db        *sql.DB
	cartRepo  storage.CartStorage
	orderRepo storage.OrderStorage
	tableRepo storage.TableStorage
}

func NewCheckoutService(log *slog.Logger, db *sql.DB, cartRepo storage.CartStorage, orderRepo storage.OrderStorage, tableRepo storage.TableStorage) CheckoutService {
	return &checkoutService{
		log:       log,
		db:        db,
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		tableRepo: tableRepo,
	}
}

// Checkout turns the user's cart into a persisted order. The order row,
// its lines and the cart clear run in one transaction, so a failure
// anywhere leaves both cart and orders untouched. Marking the table
// occupied stays outside the transaction: it is best-effort and its
// failure is reported on the result, never rolled back.
func (s *checkoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	const op = "service.CheckoutService.Checkout"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", req.UserID))

	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrCustomerNameRequired)
	}

	lines, err := s.cartRepo.GetCartLines(ctx, req.UserID)
	if err != nil {
		logger.Error("failed to get cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get cart: %w", op, err)
	}
	if len(lines) == 0 {
		logger.Warn("checkout attempted with empty cart")
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.LineTotal())
	}
	subtotal = subtotal.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax)

	order := &models.Order{
		OrderNumber:   newOrderNumber(),
		TableID:       req.TableID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Status:        models.StatusPending,
		Subtotal:      subtotal,
		TaxAmount:     tax,
		TotalAmount:   total,
		Notes:         req.Notes,
		WaiterID:      req.UserID,
	}

	logger.Info("starting checkout transaction", slog.String("orderNumber", order.OrderNumber))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	order, err = s.orderRepo.CreateOrderTx(ctx, tx, order)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	for _, line := range lines {
		orderLine := &models.OrderLine{
			OrderID:    order.ID,
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		}
		if err := s.orderRepo.CreateOrderLineTx(ctx, tx, orderLine); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			logger.Error("failed to create order line", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to create order line: %w", op, err)
		}
	}

	if err := s.cartRepo.DeleteAllForUserTx(ctx, tx, req.UserID); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to clear cart", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to clear cart: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	result := &CheckoutResult{Order: order}

	if req.TableID != nil {
		if err := s.tableRepo.SetTableAvailability(ctx, *req.TableID, false); err != nil {
			// The order is already committed; surface the failure
			// instead of pretending the table is reserved.
			logger.Warn("failed to mark table occupied", slog.Int64("tableID", *req.TableID), slog.Any("error", err))
			result.TableWarning = fmt.Sprintf("order created, but table %d could not be marked occupied", *req.TableID)
		}
	}

	logger.Info("checkout completed",
		slog.String("orderNumber", order.OrderNumber),
		slog.String("total", total.String()),
	)
	return result, nil
}

// newOrderNumber keeps the readable ORD-<millis> shape of the original
// numbering but appends a random suffix so two checkouts in the same
// millisecond cannot collide.
func newOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
