package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/naol728/rms/internal/service"
)

// DashboardHandler handles GET /api/dashboard/stats (admin)
func DashboardHandler(log *slog.Logger, dashboardService service.DashboardService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DashboardHandler"
		logger := log.With(slog.String("op", op))

		data, err := dashboardService.GetStats(r.Context())
		if err != nil {
			logger.Error("failed to get dashboard stats", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}
