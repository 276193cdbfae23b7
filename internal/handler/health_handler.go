package handler

import (
	"context"
	"net/http"
	"time"

	"mini-admin/internal/database"

	"github.com/rs/zerolog"
)

// healthTimeout bounds the database ping.
const healthTimeout = 5 * time.Second

// HealthHandler reports liveness together with database connectivity.
type HealthHandler struct {
	db     database.Pinger
	env    string
	logger zerolog.Logger
	now    func() time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db database.Pinger, env string, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		env:    env,
		logger: logger.With().Str("handler", "health").Logger(),
		now:    time.Now,
	}
}

// HealthResponse is the body of a healthy check.
type HealthResponse struct {
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	Environment string    `json:"environment"`
	Timestamp   time.Time `json:"timestamp"`
}

// HealthErrorResponse is the body of a failed check.
type HealthErrorResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error"`
}

// Check handles GET /api/health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error().Err(err).Msg("health check failed")
		writeJSON(w, http.StatusInternalServerError, HealthErrorResponse{
			Status:   statusError,
			Database: databaseDisconnected,
			Error:    err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      statusOK,
		Database:    databaseConnected,
		Environment: h.env,
		Timestamp:   h.now().UTC(),
	})
}
