package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/storage"
)

var ErrInvalidStatus = errors.New("unrecognized order status")

// OrderService is the status workflow plus the order listings the admin
// and staff views read.
type OrderService interface {
	Transition(ctx context.Context, orderID int64, status string) error
	Statuses() []models.OrderStatus
	ListOrders(ctx context.Context) ([]*models.Order, error)
	ListMyOrders(ctx context.Context, waiterID int64) ([]*models.Order, error)
	OrderLines(ctx context.Context, orderID int64) ([]*models.OrderLine, error)
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage) OrderService {
	return &orderService{
		log:       log,
		orderRepo: orderRepo,
	}
}

// Transition persists the new status. Only membership in the five known
// states is checked; any recognized target is accepted, including
// regressions like served back to pending. Hiding nonsensical moves is
// the caller's job.
func (s *orderService) Transition(ctx context.Context, orderID int64, status string) error {
	const op = "service.OrderService.Transition"
	logger := s.log.With(slog.String("op", op), slog.Int64("orderID", orderID), slog.String("status", status))

	target := models.OrderStatus(status)
	if !target.Valid() {
		logger.Warn("unrecognized status")
		return fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, target); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return fmt.Errorf("%s: %w", op, err)
		}
		logger.Error("failed to update status", slog.Any("error", err))
		return fmt.Errorf("%s: failed to update status: %w", op, err)
	}

	logger.Info("order status updated")
	return nil
}

// Statuses returns the fixed status list for selection controls.
func (s *orderService) Statuses() []models.OrderStatus {
	return models.OrderStatuses()
}

func (s *orderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, waiterID int64) ([]*models.Order, error) {
	const op = "service.OrderService.ListMyOrders"
	orders, err := s.orderRepo.ListOrdersByWaiter(ctx, waiterID)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) OrderLines(ctx context.Context, orderID int64) ([]*models.OrderLine, error) {
	const op = "service.OrderService.OrderLines"
	lines, err := s.orderRepo.GetOrderLines(ctx, orderID)
	if err != nil {
		s.log.Error("failed to get order lines", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return lines, nil
}
