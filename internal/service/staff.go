package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// StaffService is the admin-facing account management: listing staff,
// onboarding with a generated password hash, edits and removal.
type StaffService interface {
	ListStaff(ctx context.Context) ([]*models.User, error)
	AddStaff(ctx context.Context, name, email, password string) (*models.User, error)
	UpdateStaff(ctx context.Context, id int64, name, email string, active bool) error
	RemoveStaff(ctx context.Context, id int64) error
}

type staffService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewStaffService(log *slog.Logger, userRepo storage.UserStorage) StaffService {
	return &staffService{
		log:      log,
		userRepo: userRepo,
	}
}

func (s *staffService) ListStaff(ctx context.Context) ([]*models.User, error) {
	const op = "service.StaffService.ListStaff"
	users, err := s.userRepo.ListStaff(ctx)
	if err != nil {
		s.log.Error("failed to list staff", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func (s *staffService) AddStaff(ctx context.Context, name, email, password string) (*models.User, error) {
	const op = "service.StaffService.AddStaff"
	logger := s.log.With(slog.String("op", op), slog.String("email", email))

	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		logger.Warn("email already registered")
		return nil, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		logger.Error("failed to check email", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to check email: %w", op, err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		PassHash: passHash,
		Role:     models.RoleStaff,
		IsActive: true,
	}
	user, err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("failed to create staff account", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create staff account: %w", op, err)
	}

	logger.Info("staff account created", slog.Int64("userID", user.ID))
	return user, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, id int64, name, email string, active bool) error {
	const op = "service.StaffService.UpdateStaff"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", id))

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, err)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	user.Name = name
	user.Email = email
	user.IsActive = active
	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		logger.Error("failed to update staff account", slog.Any("error", err))
		return fmt.Errorf("%s: failed to update staff account: %w", op, err)
	}

	logger.Info("staff account updated")
	return nil
}

func (s *staffService) RemoveStaff(ctx context.Context, id int64) error {
	const op = "service.StaffService.RemoveStaff"
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Error("failed to remove staff account", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: failed to remove staff account: %w", op, err)
	}
	return nil
}
