package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/storage"
	"github.com/shopspring/decimal"
)

// DashboardStats aggregates the numbers the admin landing page shows.
type DashboardStats struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalOrders   int             `json:"totalOrders"`
	ActiveStaff   int             `json:"activeStaff"`
	LowStockItems int             `json:"lowStockItems"`
	TodayRevenue  decimal.Decimal `json:"todayRevenue"`
	PendingOrders int             `json:"pendingOrders"`
}

type TableStats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

type DashboardData struct {
	Stats        DashboardStats  `json:"stats"`
	RecentOrders []*models.Order `json:"recentOrders"`
	TableStats   TableStats      `json:"tableStats"`
}

type DashboardService interface {
	GetStats(ctx context.Context) (*DashboardData, error)
}

type dashboardService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
	userRepo  storage.UserStorage
	invRepo   storage.InventoryStorage
	tableRepo storage.TableStorage
}

func NewDashboardService(log *slog.Logger, orderRepo storage.OrderStorage, userRepo storage.UserStorage, invRepo storage.InventoryStorage, tableRepo storage.TableStorage) DashboardService {
	return &dashboardService{
		log:       log,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		invRepo:   invRepo,
		tableRepo: tableRepo,
	}
}

// GetStats gathers sales, staffing, stock and table numbers. The reads
// are independent queries, not a snapshot; figures can be a moment
// apart, which is fine for a dashboard.
func (s *dashboardService) GetStats(ctx context.Context) (*DashboardData, error) {
	const op = "service.DashboardService.GetStats"
	logger := s.log.With(slog.String("op", op))

	sales, err := s.orderRepo.GetSalesStats(ctx)
	if err != nil {
		logger.Error("failed to get sales stats", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get sales stats: %w", op, err)
	}

	activeStaff, err := s.userRepo.CountActiveStaff(ctx)
	if err != nil {
		logger.Error("failed to count active staff", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to count active staff: %w", op, err)
	}

	lowStock, err := s.invRepo.CountLowStock(ctx)
	if err != nil {
		logger.Error("failed to count low stock items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to count low stock items: %w", op, err)
	}

	occupancy, err := s.tableRepo.GetOccupancy(ctx)
	if err != nil {
		logger.Error("failed to get table occupancy", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get table occupancy: %w", op, err)
	}

	recent, err := s.orderRepo.RecentOrders(ctx, 5)
	if err != nil {
		logger.Error("failed to get recent orders", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get recent orders: %w", op, err)
	}

	return &DashboardData{
		Stats: DashboardStats{
			TotalSales:    sales.TotalSales,
			TotalOrders:   sales.TotalOrders,
			ActiveStaff:   activeStaff,
			LowStockItems: lowStock,
			TodayRevenue:  sales.TodayRevenue,
			PendingOrders: sales.PendingOrders,
		},
		RecentOrders: recent,
		TableStats: TableStats{
			Total:     occupancy.Total,
			Available: occupancy.Available,
			Occupied:  occupancy.Total - occupancy.Available,
		},
	}, nil
}
