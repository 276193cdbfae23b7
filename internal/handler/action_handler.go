package handler

import (
	"net/http"

	"mini-admin/internal/action"
	"mini-admin/internal/model"

	"github.com/rs/zerolog"
)

// maxFormBytes bounds a mutation form body.
const maxFormBytes = 1 << 20

// ActionHandler exposes mutations as form-encoded POST endpoints. The outcome
// is always reported in the FormState body with status 200; only a body that
// cannot be parsed is a 400.
type ActionHandler struct {
	logger zerolog.Logger
}

// NewActionHandler creates a new action handler.
func NewActionHandler(logger zerolog.Logger) *ActionHandler {
	return &ActionHandler{
		logger: logger.With().Str("handler", "action").Logger(),
	}
}

// Handle adapts fn to an HTTP handler.
func (h *ActionHandler) Handle(fn action.Func) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			h.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("unparsable form body")
			writeError(w, http.StatusBadRequest, msgInvalidRequestBody, h.logger)
			return
		}

		state := fn(r.Context(), model.FormState{}, r.PostForm)
		writeJSON(w, http.StatusOK, state)
	}
}
