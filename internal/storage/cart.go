package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/naol728/rms/internal/domain/models"
)

var ErrCartLineNotFound = errors.New("cart line not found")

// CartStorage holds one row per (user, menu item) pair. Display fields
// are captured on insert and never updated afterwards.
type CartStorage interface {
	GetCartLines(ctx context.Context, userID int64) ([]*models.CartLine, error)
	GetLineForItem(ctx context.Context, userID, menuItemID int64) (*models.CartLine, error)
	InsertLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	UpdateQuantity(ctx context.Context, lineID int64, quantity int) error
	DeleteLine(ctx context.Context, lineID int64) error
	DeleteAllForUser(ctx context.Context, userID int64) error
	// DeleteAllForUserTx clears the cart inside the checkout transaction.
	DeleteAllForUserTx(ctx context.Context, tx *sql.Tx, userID int64) error
}

type cartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) CartStorage {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetCartLines(ctx context.Context, userID int64) ([]*models.CartLine, error) {
	query := `
		SELECT id, user_id, menu_item_id, name, description, image_url, unit_price, quantity, created_at
		FROM cart
		WHERE user_id = $1
		ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	var lines []*models.CartLine
	for rows.Next() {
		line := &models.CartLine{}
		if err := rows.Scan(&line.ID, &line.UserID, &line.MenuItemID, &line.Name, &line.Description,
			&line.ImageURL, &line.UnitPrice, &line.Quantity, &line.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *cartRepository) GetLineForItem(ctx context.Context, userID, menuItemID int64) (*models.CartLine, error) {
	line := &models.CartLine{}
	query := `
		SELECT id, user_id, menu_item_id, name, description, image_url, unit_price, quantity, created_at
		FROM cart
		WHERE user_id = $1 AND menu_item_id = $2`
	row := r.db.QueryRowContext(ctx, query, userID, menuItemID)
	if err := row.Scan(&line.ID, &line.UserID, &line.MenuItemID, &line.Name, &line.Description,
		&line.ImageURL, &line.UnitPrice, &line.Quantity, &line.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCartLineNotFound
		}
		return nil, err
	}
	return line, nil
}

func (r *cartRepository) InsertLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO cart (user_id, menu_item_id, name, description, image_url, unit_price, quantity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		line.UserID, line.MenuItemID, line.Name, line.Description, line.ImageURL, line.UnitPrice, line.Quantity,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to insert cart line: %w", err)
	}
	line.ID = id
	return line, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, lineID int64, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE cart SET quantity = $1 WHERE id = $2", quantity, lineID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartLineNotFound
	}
	return nil
}

// DeleteLine removes the line. Deleting an absent line is not an error;
// removal is idempotent for the caller.
func (r *cartRepository) DeleteLine(ctx context.Context, lineID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cart WHERE id = $1", lineID)
	return err
}

func (r *cartRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cart WHERE user_id = $1", userID)
	return err
}

func (r *cartRepository) DeleteAllForUserTx(ctx context.Context, tx *sql.Tx, userID int64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM cart WHERE user_id = $1", userID)
	return err
}
