package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/naol728/rms/internal/domain/models"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errors.New("order not found")

// SalesStats is the order-side slice of the dashboard numbers.
type SalesStats struct {
	TotalSales    decimal.Decimal
	TotalOrders   int
	PendingOrders int
	TodayRevenue  decimal.Decimal
}

// OrderStorage describes access to orders and their lines. Creation
// runs inside the checkout transaction; everything else is standalone.
type OrderStorage interface {
	CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) (*models.Order, error)
	CreateOrderLineTx(ctx context.Context, tx *sql.Tx, line *models.OrderLine) error
	ListOrders(ctx context.Context) ([]*models.Order, error)
	ListOrdersByWaiter(ctx context.Context, waiterID int64) ([]*models.Order, error)
	GetOrderLines(ctx context.Context, orderID int64) ([]*models.OrderLine, error)
	UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error
	RecentOrders(ctx context.Context, limit int) ([]*models.Order, error)
	GetSalesStats(ctx context.Context) (*SalesStats, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrderTx(ctx context.Context, tx *sql.Tx, order *models.Order) (*models.Order, error) {
	query := `INSERT INTO orders (order_number, table_id, customer_name, customer_phone, status, subtotal, tax_amount, total_amount, notes, waiter_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW()) RETURNING id, created_at`
	err := tx.QueryRowContext(ctx, query,
		order.OrderNumber, order.TableID, order.CustomerName, order.CustomerPhone, order.Status,
		order.Subtotal, order.TaxAmount, order.TotalAmount, order.Notes, order.WaiterID,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) CreateOrderLineTx(ctx context.Context, tx *sql.Tx, line *models.OrderLine) error {
	query := `INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price)
	          VALUES ($1, $2, $3, $4)`
	_, err := tx.ExecContext(ctx, query, line.OrderID, line.MenuItemID, line.Quantity, line.UnitPrice)
	if err != nil {
		return fmt.Errorf("failed to create order line: %w", err)
	}
	return nil
}

const orderColumns = `id, order_number, table_id, customer_name, customer_phone, status, subtotal, tax_amount, total_amount, notes, waiter_id, created_at`

func (r *orderRepository) scanOrders(rows *sql.Rows) ([]*models.Order, error) {
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.OrderNumber, &order.TableID, &order.CustomerName,
			&order.CustomerPhone, &order.Status, &order.Subtotal, &order.TaxAmount,
			&order.TotalAmount, &order.Notes, &order.WaiterID, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	return r.scanOrders(rows)
}

func (r *orderRepository) ListOrdersByWaiter(ctx context.Context, waiterID int64) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE waiter_id = $1 ORDER BY created_at DESC", waiterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	return r.scanOrders(rows)
}

func (r *orderRepository) RecentOrders(ctx context.Context, limit int) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}
	return r.scanOrders(rows)
}

// GetOrderLines returns order lines with the live menu item name for
// display. The captured unit_price stays whatever it was at order time.
func (r *orderRepository) GetOrderLines(ctx context.Context, orderID int64) ([]*models.OrderLine, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.menu_item_id, m.name, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN menu_items m ON oi.menu_item_id = m.id
		WHERE oi.order_id = $1
		ORDER BY oi.id`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.OrderLine
	for rows.Next() {
		line := &models.OrderLine{}
		if err := rows.Scan(&line.ID, &line.OrderID, &line.MenuItemID, &line.MenuItemName,
			&line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status models.OrderStatus) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", status, orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) GetSalesStats(ctx context.Context) (*SalesStats, error) {
	stats := &SalesStats{}
	query := `
		SELECT COALESCE(SUM(total_amount), 0),
		       COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pending'),
		       COALESCE(SUM(total_amount) FILTER (WHERE created_at >= date_trunc('day', NOW())), 0)
		FROM orders`
	row := r.db.QueryRowContext(ctx, query)
	if err := row.Scan(&stats.TotalSales, &stats.TotalOrders, &stats.PendingOrders, &stats.TodayRevenue); err != nil {
		return nil, fmt.Errorf("failed to query sales stats: %w", err)
	}
	return stats, nil
}
