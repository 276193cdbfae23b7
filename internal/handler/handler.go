package handler

import (
	"encoding/json"
	"net/http"

	"mini-admin/internal/model"

	"github.com/rs/zerolog"
)

// Error messages of the read endpoints.
const (
	msgUserListFailed     = "ユーザー一覧の取得に失敗しました"
	msgUserGetFailed      = "ユーザー情報の取得に失敗しました"
	msgUserNotFound       = "ユーザーが見つかりません"
	msgProductListFailed  = "商品一覧の取得に失敗しました"
	msgProductGetFailed   = "商品情報の取得に失敗しました"
	msgProductNotFound    = "商品が見つかりません"
	msgInvalidRequestBody = "リクエストの形式が正しくありません"
)

// Health check values.
const (
	statusOK             = "ok"
	statusError          = "error"
	databaseConnected    = "connected"
	databaseDisconnected = "disconnected"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// errorWriter writes 500 responses. The cause is only exposed to clients in
// development.
type errorWriter struct {
	dev    bool
	logger zerolog.Logger
}

func (e errorWriter) internal(w http.ResponseWriter, message string, err error) {
	e.logger.Error().Err(err).Str("error", message).Msg("handler error")

	body := model.ErrorResponse{Error: message}
	if e.dev {
		body.Details = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}
