package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/storage"
)

type InventoryService interface {
	ListInventory(ctx context.Context) ([]*models.InventoryItem, error)
	CreateItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	UpdateItem(ctx context.Context, item *models.InventoryItem) error
	DeleteItem(ctx context.Context, id int64) error
}

type inventoryService struct {
	log     *slog.Logger
	invRepo storage.InventoryStorage
}

func NewInventoryService(log *slog.Logger, invRepo storage.InventoryStorage) InventoryService {
	return &inventoryService{
		log:     log,
		invRepo: invRepo,
	}
}

func (s *inventoryService) ListInventory(ctx context.Context) ([]*models.InventoryItem, error) {
	const op = "service.InventoryService.ListInventory"
	items, err := s.invRepo.ListInventory(ctx)
	if err != nil {
		s.log.Error("failed to list inventory", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *inventoryService) CreateItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	const op = "service.InventoryService.CreateItem"
	created, err := s.invRepo.CreateInventoryItem(ctx, item)
	if err != nil {
		s.log.Error("failed to create inventory item", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("inventory item created", slog.String("op", op), slog.Int64("id", created.ID))
	return created, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, item *models.InventoryItem) error {
	const op = "service.InventoryService.UpdateItem"
	if err := s.invRepo.UpdateInventoryItem(ctx, item); err != nil {
		s.log.Error("failed to update inventory item", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id int64) error {
	const op = "service.InventoryService.DeleteItem"
	if err := s.invRepo.DeleteInventoryItem(ctx, id); err != nil {
		s.log.Error("failed to delete inventory item", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
