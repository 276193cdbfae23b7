package web

import (
	"net/http"
	"net/url"
	"strconv"

	"mini-admin/internal/model"
	"mini-admin/internal/service"

	"github.com/google/uuid"
)

// SortOption is one choice of the product sort control.
type SortOption struct {
	Value string
	Label string
}

var sortOptions = []SortOption{
	{Value: model.SortCreatedAt, Label: "作成日"},
	{Value: model.SortUpdatedAt, Label: "更新日"},
	{Value: model.SortPrice, Label: "価格"},
	{Value: model.SortName, Label: "商品名"},
}

type productsData struct {
	base
	Filters     model.ProductFilters
	MinPrice    string
	MaxPrice    string
	SortOptions []SortOption
	Table       Table
	State       model.FormState
}

var productColumns = []Column[model.ProductWithOwner]{
	{Header: "商品名", Value: func(pr model.ProductWithOwner) string { return pr.Name }, Link: func(pr model.ProductWithOwner) string { return "/products/" + pr.ID.String() }},
	{Header: "カテゴリ", Value: func(pr model.ProductWithOwner) string { return deref(pr.Category) }},
	{Header: "価格", Value: func(pr model.ProductWithOwner) string { return formatPrice(pr.Price) }},
	{Header: "在庫", Value: func(pr model.ProductWithOwner) string { return strconv.Itoa(pr.Stock) }},
	{Header: "所有者", Value: func(pr model.ProductWithOwner) string { return pr.User.Name }, Link: func(pr model.ProductWithOwner) string { return "/users/" + pr.User.ID.String() }},
	{Header: "作成日", Value: func(pr model.ProductWithOwner) string { return formatDate(pr.CreatedAt) }},
}

// Products handles GET /products.
func (p *Pages) Products(w http.ResponseWriter, r *http.Request) {
	p.renderProducts(w, r, r.URL, model.FormState{})
}

// renderProducts draws the list as seen at current, which differs from r.URL
// when a refused delete redisplays it.
func (p *Pages) renderProducts(w http.ResponseWriter, r *http.Request, current *url.URL, state model.FormState) {
	list, err := p.products.List(r.Context(), service.ParseProductQuery(current.Query()))
	if err != nil {
		p.renderError(w, r, http.StatusInternalServerError, sectionProducts, "商品一覧の取得に失敗しました")
		return
	}

	b := newBase(r, "商品", sectionProducts)
	var actions func(model.ProductWithOwner) []RowAction
	if b.Admin {
		actions = func(pr model.ProductWithOwner) []RowAction {
			id := pr.ID.String()
			return []RowAction{
				{Label: "編集", Href: "/products/" + id + "/edit"},
				{Delete: NewDeleteModal(deleteURL("/products/"+id+"/delete", current), id, pr.Name)},
			}
		}
	}

	p.render(w, http.StatusOK, "products.html", productsData{
		base:        b,
		Filters:     list.Filters,
		MinPrice:    deref(list.Filters.MinPrice),
		MaxPrice:    deref(list.Filters.MaxPrice),
		SortOptions: sortOptions,
		Table:       NewTable(productColumns, list.Products, actions, list.Pagination, current),
		State:       state,
	})
}

type productFormData struct {
	base
	Heading string
	Action  string
	Editing bool
	Values  url.Values
	State   model.FormState
	Owners  []model.UserRef
	Owner   *model.UserRef
}

// NewProduct handles GET /products/new.
func (p *Pages) NewProduct(w http.ResponseWriter, r *http.Request) {
	p.renderNewProduct(w, r, url.Values{"stock": {"0"}}, model.FormState{})
}

// CreateProduct handles POST /products/new.
func (p *Pages) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, ok := p.parseForm(w, r, sectionProducts)
	if !ok {
		return
	}

	state := p.productActions.Create(r.Context(), model.FormState{}, form)
	if state.Success {
		form = url.Values{"stock": {"0"}}
	}
	p.renderNewProduct(w, r, form, state)
}

// renderNewProduct shows the create form. The owner choices are the newest
// users, up to the list limit.
func (p *Pages) renderNewProduct(w http.ResponseWriter, r *http.Request, values url.Values, state model.FormState) {
	users, err := p.users.List(r.Context(), model.UserQuery{Limit: service.MaxLimit})
	if err != nil {
		p.renderError(w, r, http.StatusInternalServerError, sectionProducts, msgLoadFailed)
		return
	}

	owners := make([]model.UserRef, 0, len(users.Users))
	for _, u := range users.Users {
		owners = append(owners, model.UserRef{ID: u.ID, Name: u.Name, Email: u.Email})
	}

	p.render(w, http.StatusOK, "product_form.html", productFormData{
		base:    newBase(r, "商品作成", sectionProducts),
		Heading: "新規商品作成",
		Action:  "/products/new",
		Values:  values,
		State:   state,
		Owners:  owners,
	})
}

// EditProduct handles GET /products/{id}/edit.
func (p *Pages) EditProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := p.loadProduct(w, r)
	if !ok {
		return
	}

	values := url.Values{
		"name":        {product.Name},
		"description": {deref(product.Description)},
		"price":       {strconv.FormatFloat(product.Price, 'f', -1, 64)},
		"stock":       {strconv.Itoa(product.Stock)},
		"category":    {deref(product.Category)},
		"image":       {deref(product.Image)},
	}
	p.renderEditProduct(w, r, product, values, model.FormState{})
}

// UpdateProduct handles POST /products/{id}/edit.
func (p *Pages) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := p.loadProduct(w, r)
	if !ok {
		return
	}
	form, ok := p.parseForm(w, r, sectionProducts)
	if !ok {
		return
	}
	form.Set("id", product.ID.String())

	state := p.productActions.Update(r.Context(), model.FormState{}, form)
	p.renderEditProduct(w, r, product, form, state)
}

func (p *Pages) renderEditProduct(w http.ResponseWriter, r *http.Request, product *model.ProductWithOwner, values url.Values, state model.FormState) {
	p.render(w, http.StatusOK, "product_form.html", productFormData{
		base:    newBase(r, "商品編集", sectionProducts),
		Heading: "商品編集",
		Action:  "/products/" + product.ID.String() + "/edit",
		Editing: true,
		Values:  values,
		State:   state,
		Owner:   &product.User,
	})
}

type productDetailData struct {
	base
	Product *model.ProductWithOwner
	Delete  *DeleteModal
}

// Product handles GET /products/{id}.
func (p *Pages) Product(w http.ResponseWriter, r *http.Request) {
	product, ok := p.loadProduct(w, r)
	if !ok {
		return
	}

	b := newBase(r, product.Name, sectionProducts)
	data := productDetailData{base: b, Product: product}
	if b.Admin {
		id := product.ID.String()
		data.Delete = NewDeleteModal("/products/"+id+"/delete", id, product.Name)
	}
	p.render(w, http.StatusOK, "product_detail.html", data)
}

// DeleteProduct handles POST /products/{id}/delete.
func (p *Pages) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	form, ok := p.parseForm(w, r, sectionProducts)
	if !ok {
		return
	}
	form.Set("id", r.PathValue("id"))

	state := p.productActions.Delete(r.Context(), model.FormState{}, form)
	if state.Success {
		http.Redirect(w, r, deleteURL("/products", r.URL), http.StatusSeeOther)
		return
	}
	p.renderProducts(w, r, &url.URL{Path: "/products", RawQuery: r.URL.RawQuery}, state)
}

func (p *Pages) loadProduct(w http.ResponseWriter, r *http.Request) (*model.ProductWithOwner, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		p.renderError(w, r, http.StatusNotFound, sectionProducts, msgProductNotFound)
		return nil, false
	}

	product, err := p.products.Get(r.Context(), id)
	if err != nil {
		if model.IsDomainError(err, model.ErrCodeProductNotFound) {
			p.renderError(w, r, http.StatusNotFound, sectionProducts, msgProductNotFound)
			return nil, false
		}
		p.logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to load product")
		p.renderError(w, r, http.StatusInternalServerError, sectionProducts, "商品情報の取得に失敗しました")
		return nil, false
	}
	return product, true
}
