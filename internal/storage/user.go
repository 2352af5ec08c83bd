package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/naol728/rms/internal/domain/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserStorage interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	ListStaff(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	CountActiveStaff(ctx context.Context) (int, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, pass_hash, role, is_active, created_at FROM users WHERE email = $1", email)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PassHash, &user.Role, &user.IsActive, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user := &models.User{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, email, pass_hash, role, is_active, created_at FROM users WHERE id = $1", id)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PassHash, &user.Role, &user.IsActive, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (name, email, pass_hash, role, is_active) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		user.Name, user.Email, user.PassHash, user.Role, user.IsActive,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// ListStaff returns every account with the staff role, newest first.
func (r *userRepository) ListStaff(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, email, pass_hash, role, is_active, created_at
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, models.RoleStaff)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PassHash, &user.Role, &user.IsActive, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET name = $1, email = $2, role = $3, is_active = $4 WHERE id = $5",
		user.Name, user.Email, user.Role, user.IsActive, user.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) CountActiveStaff(ctx context.Context) (int, error) {
	var count int
	row := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role = $1 AND is_active = TRUE", models.RoleStaff)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
