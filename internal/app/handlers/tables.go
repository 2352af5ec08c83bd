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

type TableAvailabilityRequest struct {
	IsAvailable bool `json:"is_available"`
}

// TablesHandler handles GET /api/tables: the tables currently free for
// seating.
func TablesHandler(log *slog.Logger, tableService service.TableService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.TablesHandler"
		logger := log.With(slog.String("op", op))

		tables, err := tableService.AvailableTables(r.Context())
		if err != nil {
			logger.Error("failed to list tables", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if tables == nil {
			tables = []*models.Table{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tables); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// SetTableAvailabilityHandler handles PATCH /api/tables/{id}/availability
func SetTableAvailabilityHandler(log *slog.Logger, tableService service.TableService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SetTableAvailabilityHandler"
		logger := log.With(slog.String("op", op))

		tableID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req TableAvailabilityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := tableService.SetAvailability(r.Context(), tableID, req.IsAvailable); err != nil {
			if errors.Is(err, storage.ErrTableNotFound) {
				http.Error(w, "table not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to set table availability", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
