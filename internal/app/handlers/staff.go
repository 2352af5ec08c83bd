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
)

type AddStaffRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateStaffRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	IsActive bool   `json:"is_active"`
}

func staffView(u *models.User) UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// ListStaffHandler handles GET /api/staff (admin)
func ListStaffHandler(log *slog.Logger, staffService service.StaffService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListStaffHandler"
		logger := log.With(slog.String("op", op))

		users, err := staffService.ListStaff(r.Context())
		if err != nil {
			logger.Error("failed to list staff", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		views := make([]UserView, 0, len(users))
		for _, u := range users {
			views = append(views, staffView(u))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(views); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// AddStaffHandler handles POST /api/staff (admin)
func AddStaffHandler(log *slog.Logger, staffService service.StaffService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddStaffHandler"
		logger := log.With(slog.String("op", op))

		var req AddStaffRequest
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

		user, err := staffService.AddStaff(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrEmailTaken) {
				http.Error(w, "user already exists", http.StatusConflict)
				return
			}
			logger.Error("failed to add staff", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(staffView(user)); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// UpdateStaffHandler handles PUT /api/staff/{id} (admin)
func UpdateStaffHandler(log *slog.Logger, staffService service.StaffService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateStaffHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req UpdateStaffRequest
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

		if err := staffService.UpdateStaff(r.Context(), id, req.Name, req.Email, req.IsActive); err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				http.Error(w, "user not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update staff", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RemoveStaffHandler handles DELETE /api/staff/{id} (admin)
func RemoveStaffHandler(log *slog.Logger, staffService service.StaffService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveStaffHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		if err := staffService.RemoveStaff(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				http.Error(w, "user not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to remove staff", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
