package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/naol728/rms/internal/domain/models"
)

var ErrInventoryItemNotFound = errors.New("inventory item not found")

type InventoryStorage interface {
	ListInventory(ctx context.Context) ([]*models.InventoryItem, error)
	CreateInventoryItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, id int64) error
	CountLowStock(ctx context.Context) (int, error)
}

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) InventoryStorage {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) ListInventory(ctx context.Context) ([]*models.InventoryItem, error) {
	query := `
		SELECT id, item_name, category, current_stock, min_stock_level, unit, supplier, last_restocked
		FROM inventory
		ORDER BY item_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []*models.InventoryItem
	for rows.Next() {
		item := &models.InventoryItem{}
		if err := rows.Scan(&item.ID, &item.ItemName, &item.Category, &item.CurrentStock,
			&item.MinStockLevel, &item.Unit, &item.Supplier, &item.LastRestocked); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO inventory (item_name, category, current_stock, min_stock_level, unit, supplier, last_restocked)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW()) RETURNING id`,
		item.ItemName, item.Category, item.CurrentStock, item.MinStockLevel, item.Unit, item.Supplier,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	item.ID = id
	return item, nil
}

func (r *inventoryRepository) UpdateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE inventory SET item_name = $1, category = $2, current_stock = $3, min_stock_level = $4, unit = $5, supplier = $6
		 WHERE id = $7`,
		item.ItemName, item.Category, item.CurrentStock, item.MinStockLevel, item.Unit, item.Supplier, item.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInventoryItemNotFound
	}
	return nil
}

func (r *inventoryRepository) DeleteInventoryItem(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM inventory WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInventoryItemNotFound
	}
	return nil
}

func (r *inventoryRepository) CountLowStock(ctx context.Context) (int, error) {
	var count int
	row := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM inventory WHERE current_stock <= min_stock_level")
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
