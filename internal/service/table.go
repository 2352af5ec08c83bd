package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/storage"
)

type TableService interface {
	AvailableTables(ctx context.Context) ([]*models.Table, error)
	SetAvailability(ctx context.Context, tableID int64, available bool) error
}

type tableService struct {
	log       *slog.Logger
	tableRepo storage.TableStorage
}

func NewTableService(log *slog.Logger, tableRepo storage.TableStorage) TableService {
	return &tableService{
		log:       log,
		tableRepo: tableRepo,
	}
}

func (s *tableService) AvailableTables(ctx context.Context) ([]*models.Table, error) {
	const op = "service.TableService.AvailableTables"
	tables, err := s.tableRepo.ListAvailableTables(ctx)
	if err != nil {
		s.log.Error("failed to list tables", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tables, nil
}

func (s *tableService) SetAvailability(ctx context.Context, tableID int64, available bool) error {
	const op = "service.TableService.SetAvailability"
	if err := s.tableRepo.SetTableAvailability(ctx, tableID, available); err != nil {
		s.log.Error("failed to set table availability", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
