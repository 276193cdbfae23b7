package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mini-admin/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_List(t *testing.T) {
	logger := zerolog.Nop()
	minPrice := "10"

	tests := []struct {
		name           string
		queryParams    string
		expectedQuery  model.ProductQuery
		mockReturn     *model.ProductList
		mockError      error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:          "Success with filters echoed",
			queryParams:   "?search=desk&category=furniture&minPrice=10&sortBy=bogus&sortOrder=asc",
			expectedQuery: model.ProductQuery{Search: "desk", Category: "furniture", MinPrice: "10", SortBy: "bogus", SortOrder: "asc"},
			mockReturn: &model.ProductList{
				Products:   []model.ProductWithOwner{},
				Pagination: model.NewPagination(1, 10, 0),
				Filters: model.ProductFilters{
					Search: "desk", Category: "furniture", MinPrice: &minPrice, SortBy: "bogus", SortOrder: "asc",
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"products": [],
				"pagination": {"page": 1, "limit": 10, "total": 0, "totalPages": 0, "hasNext": false, "hasPrev": false},
				"filters": {"search": "desk", "category": "furniture", "minPrice": "10", "maxPrice": null, "sortBy": "bogus", "sortOrder": "asc"}
			}`,
		},
		{
			name:           "Service error",
			queryParams:    "?page=3",
			expectedQuery:  model.ProductQuery{Page: 3},
			mockError:      errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"商品一覧の取得に失敗しました"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, false, logger)

			var ret any
			if tt.mockReturn != nil {
				ret = tt.mockReturn
			}
			mockService.On("List", mock.Anything, tt.expectedQuery).Return(ret, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.queryParams, nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}

func TestProductHandler_Get(t *testing.T) {
	logger := zerolog.Nop()
	id := uuid.MustParse("3f1c8f0e-2f5e-4c3a-8d7e-6a1b2c3d4e5f")
	owner := uuid.MustParse("0d9e8f7a-6b5c-4d3e-2f1a-0b9c8d7e6f5a")

	tests := []struct {
		name           string
		pathID         string
		mockReturn     *model.ProductWithOwner
		mockError      error
		expectService  bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Success",
			pathID: id.String(),
			mockReturn: &model.ProductWithOwner{
				Product: model.Product{ID: id, Name: "Desk", Price: 99.5, Stock: 1, UserID: owner},
				User:    model.UserRef{ID: owner, Name: "Alice", Email: "alice@example.com"},
			},
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found",
			pathID:         id.String(),
			mockError:      model.ErrProductNotFound,
			expectService:  true,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"商品が見つかりません"}`,
		},
		{
			name:           "Malformed id",
			pathID:         "P001",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"商品が見つかりません"}`,
		},
		{
			name:           "Service error",
			pathID:         id.String(),
			mockError:      errors.New("database error"),
			expectService:  true,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"商品情報の取得に失敗しました"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockProductService)
			handler := NewProductHandler(mockService, false, logger)

			if tt.expectService {
				var ret any
				if tt.mockReturn != nil {
					ret = tt.mockReturn
				}
				mockService.On("Get", mock.Anything, id).Return(ret, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/products/"+tt.pathID, nil)
			req.SetPathValue("id", tt.pathID)
			w := httptest.NewRecorder()

			handler.Get(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"product":{`)
				assert.Contains(t, w.Body.String(), `"user":{"id":"0d9e8f7a-6b5c-4d3e-2f1a-0b9c8d7e6f5a","name":"Alice","email":"alice@example.com"}`)
			}
			mockService.AssertExpectations(t)
		})
	}
}
