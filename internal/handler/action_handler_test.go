package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"mini-admin/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestActionHandler_Handle(t *testing.T) {
	tests := []struct {
		name           string
		contentType    string
		body           string
		result         model.FormState
		expectCalled   bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			contentType:    "application/x-www-form-urlencoded",
			body:           "name=Test+User&email=test%40example.com",
			result:         model.Succeeded("ユーザー「Test User」を作成しました"),
			expectCalled:   true,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"message":"ユーザー「Test User」を作成しました"}`,
		},
		{
			name:           "Field errors are still a 200",
			contentType:    "application/x-www-form-urlencoded",
			body:           "email=taken%40example.com",
			result:         model.FieldError("email", "このメールアドレスは既に使用されています"),
			expectCalled:   true,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"errors":{"email":["このメールアドレスは既に使用されています"]}}`,
		},
		{
			name:           "Malformed body",
			contentType:    "application/x-www-form-urlencoded",
			body:           "name=%zz",
			expectCalled:   false,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"リクエストの形式が正しくありません"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			var got url.Values
			fn := func(_ context.Context, _ model.FormState, form url.Values) model.FormState {
				called = true
				got = form
				return tt.result
			}

			handler := NewActionHandler(zerolog.Nop()).Handle(fn)

			req := httptest.NewRequest(http.MethodPost, "/api/actions/users/create", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()

			handler(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectCalled, called)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			if tt.name == "Success" {
				assert.Equal(t, "Test User", got.Get("name"))
				assert.Equal(t, "test@example.com", got.Get("email"))
			}
		})
	}
}
