package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/naol728/rms/internal/domain/models"
	"github.com/naol728/rms/internal/service"
	"github.com/naol728/rms/internal/storage"
	"github.com/shopspring/decimal"
)

// MenuResponse wraps the filtered items; Warning is set when the
// snapshot came from the fallback catalog after a failed load.
type MenuResponse struct {
	Items   []*models.MenuItem `json:"items"`
	Warning string             `json:"warning,omitempty"`
}

type MenuItemRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	CategoryID  int64           `json:"category_id" validate:"required"`
	ImageURL    string          `json:"image_url"`
	IsAvailable *bool           `json:"is_available"`
}

type AvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// MenuHandler handles GET /api/menu with optional search and category
// query parameters. It serves the in-memory snapshot.
func MenuHandler(log *slog.Logger, menuService *service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MenuHandler"
		logger := log.With(slog.String("op", op))

		items := menuService.Filter(r.URL.Query().Get("search"), r.URL.Query().Get("category"))
		if items == nil {
			items = []*models.MenuItem{}
		}

		resp := MenuResponse{Items: items}
		if err := menuService.LastError(); err != nil {
			resp.Warning = "menu could not be loaded; showing fallback catalog"
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}
}

// CategoriesHandler handles GET /api/categories
func CategoriesHandler(log *slog.Logger, menuService *service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CategoriesHandler"
		logger := log.With(slog.String("op", op))

		categories, err := menuService.Categories(r.Context())
		if err != nil {
			logger.Error("failed to list categories", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(categories); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// ReloadMenuHandler handles POST /api/menu/reload: re-reads the menu
// from storage into the snapshot.
func ReloadMenuHandler(log *slog.Logger, menuService *service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuService.Load(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}
}

// CreateMenuItemHandler handles POST /api/menu (admin)
func CreateMenuItemHandler(log *slog.Logger, menuService *service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateMenuItemHandler"
		logger := log.With(slog.String("op", op))

		var req MenuItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		available := true
		if req.IsAvailable != nil {
			available = *req.IsAvailable
		}
		item := &models.MenuItem{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			CategoryID:  req.CategoryID,
			ImageURL:    req.ImageURL,
			IsAvailable: available,
		}

		created, err := menuService.CreateMenuItem(r.Context(), item)
		if err != nil {
			if errors.Is(err, storage.ErrCategoryNotFound) {
				http.Error(w, "category not found", http.StatusBadRequest)
				return
			}
			logger.Error("failed to create menu item", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(created); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// UpdateMenuItemHandler handles PUT /api/menu/{id} (admin)
func UpdateMenuItemHandler(log *slog.Logger, menuService *service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateMenuItemHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req MenuItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		available := true
		if req.IsAvailable != nil {
			available = *req.IsAvailable
		}
		item := &models.MenuItem{
			ID:          id,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			CategoryID:  req.CategoryID,
			ImageURL:    req.ImageURL,
			IsAvailable: available,
		}

		if err := menuService.UpdateMenuItem(r.Context(), item); err != nil {
			if errors.Is(err, storage.ErrMenuItemNotFound) {
				http.Error(w, "menu item not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update menu item", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DeleteMenuItemHandler handles DELETE /api/menu/{id} (admin)
func DeleteMenuItemHandler(log *slog.Logger, menuService *service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteMenuItemHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := menuService.DeleteMenuItem(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrMenuItemNotFound) {
				http.Error(w, "menu item not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to delete menu item", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToggleAvailabilityHandler handles PATCH /api/menu/{id}/availability (admin)
func ToggleAvailabilityHandler(log *slog.Logger, menuService *service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ToggleAvailabilityHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req AvailabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := menuService.ToggleAvailability(r.Context(), id, req.IsAvailable); err != nil {
			if errors.Is(err, storage.ErrMenuItemNotFound) {
				http.Error(w, "menu item not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to toggle availability", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// maxImageSize caps menu image uploads at 5 MiB.
const maxImageSize = 5 << 20

// UploadMenuImageHandler handles POST /api/menu/{id}/image (admin). The
// image arrives as multipart form field "image" and is stored in the
// object store; the resulting URL is saved on the item.
func UploadMenuImageHandler(log *slog.Logger, menuService *service.MenuService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UploadMenuImageHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := r.ParseMultipartForm(maxImageSize); err != nil {
			logger.Error("invalid multipart form", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		url, err := menuService.UploadImage(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			if errors.Is(err, storage.ErrMenuItemNotFound) {
				http.Error(w, "menu item not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to upload image", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"image_url": url}); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}
