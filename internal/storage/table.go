package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/naol728/rms/internal/domain/models"
)

var ErrTableNotFound = errors.New("table not found")

// TableOccupancy is the table-side slice of the dashboard numbers.
type TableOccupancy struct {
	Total     int
	Available int
}

type TableStorage interface {
	ListAvailableTables(ctx context.Context) ([]*models.Table, error)
	SetTableAvailability(ctx context.Context, id int64, available bool) error
	GetOccupancy(ctx context.Context) (*TableOccupancy, error)
}

type tableRepository struct {
	db *sql.DB
}

func NewTableRepository(db *sql.DB) TableStorage {
	return &tableRepository{db: db}
}

func (r *tableRepository) ListAvailableTables(ctx context.Context) ([]*models.Table, error) {
	query := `
		SELECT id, table_number, capacity, is_available
		FROM tables
		WHERE is_available = TRUE
		ORDER BY table_number`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []*models.Table
	for rows.Next() {
		table := &models.Table{}
		if err := rows.Scan(&table.ID, &table.TableNumber, &table.Capacity, &table.IsAvailable); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *tableRepository) SetTableAvailability(ctx context.Context, id int64, available bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tables SET is_available = $1 WHERE id = $2", available, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTableNotFound
	}
	return nil
}

func (r *tableRepository) GetOccupancy(ctx context.Context) (*TableOccupancy, error) {
	occ := &TableOccupancy{}
	row := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COUNT(*) FILTER (WHERE is_available) FROM tables")
	if err := row.Scan(&occ.Total, &occ.Available); err != nil {
		return nil, fmt.Errorf("failed to query table occupancy: %w", err)
	}
	return occ, nil
}
