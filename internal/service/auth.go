package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/naol728/rms/internal/auth"
	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Register(ctx context.Context, name, email, password, role string) (*models.User, error)
}

type authService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	tokenTTL time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, tokenTTL time.Duration) AuthService {
	return &authService{
		log:      log,
		userRepo: userRepo,
		tokenTTL: tokenTTL,
	}
}

// Login authenticates an existing account and issues a JWT carrying the
// account role. Unknown emails and wrong passwords both map to
// ErrInvalidCredentials so the caller cannot probe for accounts.
func (a *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if !user.IsActive {
		logger.Warn("account is deactivated")
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return "", nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := auth.NewToken(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return token, user, nil
}

// Register creates a new account with a bcrypt-hashed password. Role
// defaults to staff when empty.
func (a *authService) Register(ctx context.Context, name, email, password, role string) (*models.User, error) {
	const op = "service.AuthService.Register"
	logger := a.log.With(slog.String("op", op), slog.String("email", email))

	if _, err := a.userRepo.GetUserByEmail(ctx, email); err == nil {
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

	if role == "" {
		role = models.RoleStaff
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		PassHash: passHash,
		Role:     role,
		IsActive: true,
	}
	user, err = a.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logger.Info("user registered", slog.Int64("userID", user.ID))
	return user, nil
}
