package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/naol728/rms/internal/domain/models"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// MenuStorage describes access to menu items and their categories.
type MenuStorage interface {
	ListMenuItems(ctx context.Context) ([]*models.MenuItem, error)
	GetMenuItemByID(ctx context.Context, id int64) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int64) error
	SetAvailability(ctx context.Context, id int64, available bool) error
	ListActiveCategories(ctx context.Context) ([]*models.Category, error)
}

type menuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) MenuStorage {
	return &menuRepository{db: db}
}

// ListMenuItems returns all menu items with their category name, newest
// first, matching what the ordering view expects.
func (r *menuRepository) ListMenuItems(ctx context.Context) ([]*models.MenuItem, error) {
	query := `
		SELECT m.id, m.name, m.description, m.price, m.category_id, c.name, m.image_url, m.is_available, m.created_at
		FROM menu_items m
		JOIN categories c ON m.category_id = c.id
		ORDER BY m.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item := &models.MenuItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.CategoryID,
			&item.Category, &item.ImageURL, &item.IsAvailable, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) GetMenuItemByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	query := `
		SELECT m.id, m.name, m.description, m.price, m.category_id, c.name, m.image_url, m.is_available, m.created_at
		FROM menu_items m
		JOIN categories c ON m.category_id = c.id
		WHERE m.id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.CategoryID,
		&item.Category, &item.ImageURL, &item.IsAvailable, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *menuRepository) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO menu_items (name, description, price, category_id, image_url, is_available)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		item.Name, item.Description, item.Price, item.CategoryID, item.ImageURL, item.IsAvailable,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	item.ID = id
	return item, nil
}

func (r *menuRepository) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE menu_items SET name = $1, description = $2, price = $3, category_id = $4, image_url = $5, is_available = $6
		 WHERE id = $7`,
		item.Name, item.Description, item.Price, item.CategoryID, item.ImageURL, item.IsAvailable, item.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *menuRepository) DeleteMenuItem(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *menuRepository) SetAvailability(ctx context.Context, id int64, available bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE menu_items SET is_available = $1 WHERE id = $2", available, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMenuItemNotFound
	}
	return nil
}

func (r *menuRepository) ListActiveCategories(ctx context.Context) ([]*models.Category, error) {
	query := `
		SELECT id, name, description, is_active
		FROM categories
		WHERE is_active = TRUE
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}
