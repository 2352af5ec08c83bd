package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/lib/imagestore"
	"github.com/naol728/rms/internal/storage"
	"github.com/shopspring/decimal"
)

// CategoryAll is the sentinel category that matches every item.
const CategoryAll = "All"

// MenuService keeps an in-memory snapshot of the menu for the ordering
// views. Load replaces the snapshot from the database; when the load
// fails the fixed fallback catalog is substituted so the UI stays
// usable, and the failure is kept around as a non-fatal warning.
// Administrative edits write through to storage and show up in the
// snapshot only after the next Load.
type MenuService struct {
	log      *slog.Logger
	menuRepo storage.MenuStorage
	images   imagestore.Uploader

	mu      sync.RWMutex
	items   []*models.MenuItem
	loaded  bool
	lastErr error
}

func NewMenuService(log *slog.Logger, menuRepo storage.MenuStorage, images imagestore.Uploader) *MenuService {
	return &MenuService{
		log:      log,
		menuRepo: menuRepo,
		images:   images,
	}
}

// Load fetches all menu items and replaces the snapshot. On failure the
// fallback catalog takes its place; the error is recorded, not
// returned, because a failed load is recoverable here.
func (s *MenuService) Load(ctx context.Context) {
	const op = "service.MenuService.Load"
	logger := s.log.With(slog.String("op", op))

	items, err := s.menuRepo.ListMenuItems(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		logger.Warn("menu load failed, using fallback catalog", slog.Any("error", err))
		s.items = fallbackCatalog()
		s.loaded = true
		s.lastErr = err
		return
	}

	logger.Info("menu loaded", slog.Int("items", len(items)))
	s.items = items
	s.loaded = true
	s.lastErr = nil
}

// Items returns the current snapshot.
func (s *MenuService) Items() []*models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

// Loaded reports whether Load has completed at least once.
func (s *MenuService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// LastError returns the most recent load failure, nil after a clean load.
func (s *MenuService) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Filter returns the items whose name or description contains search
// (case-insensitive) and whose category matches exactly, with the
// sentinel "All" matching every category. Unavailable items are always
// excluded.
func (s *MenuService) Filter(search, category string) []*models.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search = strings.ToLower(search)

	var out []*models.MenuItem
	for _, item := range s.items {
		if !item.IsAvailable {
			continue
		}
		if category != "" && category != CategoryAll && item.Category != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories lists active categories for the filter controls.
func (s *MenuService) Categories(ctx context.Context) ([]*models.Category, error) {
	const op = "service.MenuService.Categories"
	categories, err := s.menuRepo.ListActiveCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}

// CreateMenuItem persists a new menu item. The snapshot is not touched;
// callers reload to see it.
func (s *MenuService) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	const op = "service.MenuService.CreateMenuItem"
	created, err := s.menuRepo.CreateMenuItem(ctx, item)
	if err != nil {
		s.log.Error("failed to create menu item", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("menu item created", slog.String("op", op), slog.Int64("id", created.ID))
	return created, nil
}

func (s *MenuService) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	const op = "service.MenuService.UpdateMenuItem"
	if err := s.menuRepo.UpdateMenuItem(ctx, item); err != nil {
		s.log.Error("failed to update menu item", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *MenuService) DeleteMenuItem(ctx context.Context, id int64) error {
	const op = "service.MenuService.DeleteMenuItem"
	if err := s.menuRepo.DeleteMenuItem(ctx, id); err != nil {
		s.log.Error("failed to delete menu item", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *MenuService) ToggleAvailability(ctx context.Context, id int64, available bool) error {
	const op = "service.MenuService.ToggleAvailability"
	if err := s.menuRepo.SetAvailability(ctx, id, available); err != nil {
		s.log.Error("failed to toggle availability", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UploadImage stores an image blob and records its public URL on the
// menu item.
func (s *MenuService) UploadImage(ctx context.Context, id int64, filename, contentType string, body io.ReadSeeker) (string, error) {
	const op = "service.MenuService.UploadImage"
	logger := s.log.With(slog.String("op", op), slog.Int64("id", id))

	item, err := s.menuRepo.GetMenuItemByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key := imagestore.MenuImageKey(filename)
	url, err := s.images.Upload(ctx, key, body, contentType)
	if err != nil {
		logger.Error("failed to upload image", slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	item.ImageURL = url
	if err := s.menuRepo.UpdateMenuItem(ctx, item); err != nil {
		logger.Error("failed to store image url", slog.Any("error", err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("image uploaded", slog.String("key", key))
	return url, nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fallbackCatalog is the demo menu served when the database cannot be
// reached, so the ordering screens keep working offline.
func fallbackCatalog() []*models.MenuItem {
	return []*models.MenuItem{
		{ID: 1, Name: "Cheese Salad", Description: "Delicious cheese salad with fresh vegetables", Price: price("12.99"), Category: "Appetizer", ImageURL: "/images/Chees Salad.jpg", IsAvailable: true},
		{ID: 2, Name: "Burger", Description: "Juicy beef burger with fries", Price: price("10.50"), Category: "Main Course", ImageURL: "/images/Burger.jpg", IsAvailable: true},
		{ID: 3, Name: "Caesar Salad", Description: "Fresh Caesar salad with croutons", Price: price("8.00"), Category: "Appetizer", ImageURL: "/images/Caesar Salad.jpg", IsAvailable: true},
		{ID: 4, Name: "Chocolate Cake", Description: "Rich chocolate cake with cream", Price: price("6.50"), Category: "Dessert", ImageURL: "/images/Chocolate Cake.jpj.jpg", IsAvailable: true},
		{ID: 5, Name: "Coffee", Description: "Hot brewed coffee", Price: price("3.00"), Category: "Beverage", ImageURL: "/images/Coffee.jpg", IsAvailable: true},
		{ID: 6, Name: "Ice Cream", Description: "Vanilla ice cream", Price: price("4.50"), Category: "Dessert", ImageURL: "/images/chocolat.jpg", IsAvailable: true},
		{ID: 7, Name: "French Fries", Description: "Crispy golden fries", Price: price("5.00"), Category: "Appetizer", ImageURL: "/images/French Fries.jpg", IsAvailable: true},
		{ID: 8, Name: "Grilled Chicken", Description: "Grilled chicken breast with herbs", Price: price("14.00"), Category: "Main Course", ImageURL: "/images/Grilled Chicken.jpg", IsAvailable: true},
		{ID: 9, Name: "Lemonade", Description: "Fresh lemonade", Price: price("3.50"), Category: "Beverage", ImageURL: "/images/Lemonade.jpg", IsAvailable: true},
		{ID: 10, Name: "Pasta Carbonara", Description: "Creamy pasta with bacon", Price: price("13.00"), Category: "Main Course", ImageURL: "/images/Pasta Carbonara.jpg", IsAvailable: true},
		{ID: 11, Name: "Garlic Bread", Description: "Toasted garlic bread", Price: price("4.00"), Category: "Appetizer", ImageURL: "/images/Garlic Bread.jpg", IsAvailable: true},
		{ID: 12, Name: "Mango Smoothie", Description: "Refreshing mango smoothie", Price: price("5.00"), Category: "Beverage", ImageURL: "/images/Mango Smoothie.jpg", IsAvailable: true},
	}
}
