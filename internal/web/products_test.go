package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"mini-admin/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func desk() *model.ProductWithOwner {
	description := "Oak desk"
	category := "furniture"
	return &model.ProductWithOwner{
		Product: model.Product{ID: bobID, Name: "Desk", Description: &description, Price: 25000, Stock: 3, Category: &category, UserID: aliceID},
		User:    model.UserRef{ID: aliceID, Name: "Alice", Email: "alice@example.com"},
	}
}

func TestPages_Products(t *testing.T) {
	f := newPagesFixture(t)
	minPrice := "100"
	f.products.On("List", mock.Anything, model.ProductQuery{MinPrice: "100", SortBy: "price", SortOrder: "asc"}).
		Return(&model.ProductList{
			Products:   []model.ProductWithOwner{*desk()},
			Pagination: model.NewPagination(1, 10, 1),
			Filters:    model.ProductFilters{MinPrice: &minPrice, SortBy: "price", SortOrder: "asc"},
		}, nil)

	req := asRole(httptest.NewRequest(http.MethodGet, "/products?minPrice=100&sortBy=price&sortOrder=asc", nil), "admin")
	w := httptest.NewRecorder()
	f.pages.Products(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `name="minPrice" value="100"`)
	assert.Contains(t, body, `<option value="price" selected>価格</option>`)
	assert.Contains(t, body, `<option value="asc" selected>昇順</option>`)
	assert.Contains(t, body, "¥25,000")
	assert.Contains(t, body, `<a href="/users/`+aliceID.String()+`">Alice</a>`)
	assert.Contains(t, body, `href="/products/`+bobID.String()+`/edit"`)
}

func TestPages_NewProduct_ListsOwners(t *testing.T) {
	f := newPagesFixture(t)
	f.users.On("List", mock.Anything, model.UserQuery{Limit: 100}).Return(twoUsers(), nil)

	w := httptest.NewRecorder()
	f.pages.NewProduct(w, asRole(httptest.NewRequest(http.MethodGet, "/products/new", nil), "admin"))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `<option value="`+aliceID.String()+`">Alice (alice@example.com)</option>`)
	assert.Contains(t, body, `name="stock" value="0"`)
}

func TestPages_CreateProduct_KeepsOwnerOnError(t *testing.T) {
	f := newPagesFixture(t)
	f.users.On("List", mock.Anything, model.UserQuery{Limit: 100}).Return(twoUsers(), nil)
	f.productActions.state = model.FieldError("price", "価格は0以上で入力してください")

	w := httptest.NewRecorder()
	f.pages.CreateProduct(w, postForm("/products/new", url.Values{
		"name": {"Desk"}, "price": {"-1"}, "userId": {bobID.String()},
	}))

	body := w.Body.String()
	assert.Contains(t, body, "価格は0以上で入力してください")
	assert.Contains(t, body, `<option value="`+bobID.String()+`" selected>`)
}

func TestPages_EditProduct(t *testing.T) {
	f := newPagesFixture(t)
	f.products.On("Get", mock.Anything, bobID).Return(desk(), nil)

	req := asRole(httptest.NewRequest(http.MethodGet, "/products/"+bobID.String()+"/edit", nil), "admin")
	req.SetPathValue("id", bobID.String())
	w := httptest.NewRecorder()
	f.pages.EditProduct(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `name="price" value="25000"`)
	assert.Contains(t, body, "Oak desk</textarea>")
	assert.Contains(t, body, "所有者: <a")
	assert.NotContains(t, body, `name="userId"`)
}

func TestPages_UpdateProduct(t *testing.T) {
	f := newPagesFixture(t)
	f.products.On("Get", mock.Anything, bobID).Return(desk(), nil)
	f.productActions.state = model.Succeeded("商品「Desk」を更新しました")

	req := postForm("/products/"+bobID.String()+"/edit", url.Values{"name": {"Desk"}, "price": {"1"}, "stock": {"1"}})
	req.SetPathValue("id", bobID.String())
	w := httptest.NewRecorder()
	f.pages.UpdateProduct(w, req)

	assert.Equal(t, []string{"update"}, f.productActions.calls)
	assert.Equal(t, bobID.String(), f.productActions.form.Get("id"))
	assert.Contains(t, w.Body.String(), "商品「Desk」を更新しました")
}

func TestPages_Product(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		f := newPagesFixture(t)
		f.products.On("Get", mock.Anything, bobID).Return(desk(), nil)

		req := asRole(httptest.NewRequest(http.MethodGet, "/products/"+bobID.String(), nil), "admin")
		req.SetPathValue("id", bobID.String())
		w := httptest.NewRecorder()
		f.pages.Product(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `<dialog id="delete-`+bobID.String()+`">`)
	})

	t.Run("Load failure", func(t *testing.T) {
		f := newPagesFixture(t)
		f.products.On("Get", mock.Anything, bobID).Return(nil, errors.New("timeout"))

		req := httptest.NewRequest(http.MethodGet, "/products/"+bobID.String(), nil)
		req.SetPathValue("id", bobID.String())
		w := httptest.NewRecorder()
		f.pages.Product(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "商品情報の取得に失敗しました")
	})
}

func TestPages_DeleteProduct(t *testing.T) {
	f := newPagesFixture(t)
	f.productActions.state = model.Succeeded("商品「Desk」を削除しました")

	req := postForm("/products/"+bobID.String()+"/delete", url.Values{})
	req.SetPathValue("id", bobID.String())
	w := httptest.NewRecorder()
	f.pages.DeleteProduct(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/products", w.Header().Get("Location"))
	assert.Equal(t, bobID.String(), f.productActions.form.Get("id"))
}

func TestNewPages(t *testing.T) {
	pages, err := NewPages(new(MockUserService), new(MockProductService), &fakeMutations{}, &fakeMutations{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, pages.templates, len(pageFiles))
}
