package handler

import (
	"net/http"

	"mini-admin/internal/model"
	"mini-admin/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserHandler handles the user read endpoints.
type UserHandler struct {
	service service.UserService
	errorWriter
	logger zerolog.Logger
}

// NewUserHandler creates a new user handler. dev exposes error details.
func NewUserHandler(service service.UserService, dev bool, logger zerolog.Logger) *UserHandler {
	l := logger.With().Str("handler", "user").Logger()
	return &UserHandler{
		service:     service,
		errorWriter: errorWriter{dev: dev, logger: l},
		logger:      l,
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), service.ParseUserQuery(r.URL.Query()))
	if err != nil {
		h.internal(w, msgUserListFailed, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

type userResponse struct {
	User *model.UserDetail `json:"user"`
}

// Get handles GET /api/users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, msgUserNotFound, h.logger)
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		if model.IsDomainError(err, model.ErrCodeUserNotFound) {
			writeError(w, http.StatusNotFound, msgUserNotFound, h.logger)
			return
		}
		h.internal(w, msgUserGetFailed, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}
