// Package web renders the admin UI: server-side pages composed from the read
// services, with forms wired to the mutation actions.
package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"mini-admin/internal/auth"
	"mini-admin/internal/model"
	"mini-admin/internal/service"

	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageFiles lists the page templates. Each is parsed with the layout and the
// widgets into its own set.
var pageFiles = []string{
	"dashboard.html",
	"users.html",
	"user_form.html",
	"user_detail.html",
	"products.html",
	"product_form.html",
	"product_detail.html",
	"error.html",
}

// UserMutations are the user form actions.
type UserMutations interface {
	Create(ctx context.Context, prev model.FormState, form url.Values) model.FormState
	Update(ctx context.Context, prev model.FormState, form url.Values) model.FormState
	Delete(ctx context.Context, prev model.FormState, form url.Values) model.FormState
}

// ProductMutations are the product form actions.
type ProductMutations interface {
	Create(ctx context.Context, prev model.FormState, form url.Values) model.FormState
	Update(ctx context.Context, prev model.FormState, form url.Values) model.FormState
	Delete(ctx context.Context, prev model.FormState, form url.Values) model.FormState
}

// Pages serves the admin UI.
type Pages struct {
	users          service.UserService
	products       service.ProductService
	userActions    UserMutations
	productActions ProductMutations
	templates      map[string]*template.Template
	logger         zerolog.Logger
}

// NewPages parses the embedded templates and creates the UI handlers.
func NewPages(
	users service.UserService,
	products service.ProductService,
	userActions UserMutations,
	productActions ProductMutations,
	logger zerolog.Logger,
) (*Pages, error) {
	templates := make(map[string]*template.Template, len(pageFiles))
	for _, name := range pageFiles {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/widgets.html",
			"templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = t
	}

	return &Pages{
		users:          users,
		products:       products,
		userActions:    userActions,
		productActions: productActions,
		templates:      templates,
		logger:         logger.With().Str("handler", "web").Logger(),
	}, nil
}

// Navigation sections.
const (
	sectionHome     = "home"
	sectionUsers    = "users"
	sectionProducts = "products"
)

// base is the data every page passes to the layout.
type base struct {
	Title   string
	Section string
	Admin   bool
}

func newBase(r *http.Request, title, section string) base {
	claims, ok := auth.FromContext(r.Context())
	return base{
		Title:   title,
		Section: section,
		Admin:   ok && claims.IsAdmin(),
	}
}

// render executes the named page into a buffer first so a template failure
// never leaves a half-written page.
func (p *Pages) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := p.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		p.logger.Error().Err(err).Str("template", name).Msg("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorData struct {
	base
	Message string
}

func (p *Pages) renderError(w http.ResponseWriter, r *http.Request, status int, section, message string) {
	p.render(w, status, "error.html", errorData{
		base:    newBase(r, message, section),
		Message: message,
	})
}

// parseForm reads a POSTed form. ok is false once a 400 has been written.
func (p *Pages) parseForm(w http.ResponseWriter, r *http.Request, section string) (url.Values, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := r.ParseForm(); err != nil {
		p.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("unparsable form body")
		p.renderError(w, r, http.StatusBadRequest, section, msgInvalidForm)
		return nil, false
	}
	return r.PostForm, true
}

const (
	msgInvalidForm     = "送信内容を読み取れませんでした"
	msgUserNotFound    = "ユーザーが見つかりません"
	msgProductNotFound = "商品が見つかりません"
	msgLoadFailed      = "データの取得に失敗しました"
)

type dashboardData struct {
	base
	UserCount    int64
	ProductCount int64
}

// Dashboard handles GET /.
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		p.renderError(w, r, http.StatusNotFound, sectionHome, "ページが見つかりません")
		return
	}

	users, err := p.users.List(r.Context(), model.UserQuery{Limit: 1})
	if err != nil {
		p.renderError(w, r, http.StatusInternalServerError, sectionHome, msgLoadFailed)
		return
	}
	products, err := p.products.List(r.Context(), model.ProductQuery{Limit: 1})
	if err != nil {
		p.renderError(w, r, http.StatusInternalServerError, sectionHome, msgLoadFailed)
		return
	}

	p.render(w, http.StatusOK, "dashboard.html", dashboardData{
		base:         newBase(r, "ダッシュボード", sectionHome),
		UserCount:    users.Pagination.Total,
		ProductCount: products.Pagination.Total,
	})
}
