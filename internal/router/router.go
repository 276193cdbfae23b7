package router

import (
	"net/http"

	"mini-admin/internal/action"
	"mini-admin/internal/cache"
	"mini-admin/internal/handler"
	"mini-admin/internal/middleware"
	"mini-admin/internal/web"

	"github.com/rs/zerolog"
)

// HealthPath is the only route served without a token.
const HealthPath = "/api/health"

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Users          *handler.UserHandler
	Products       *handler.ProductHandler
	Actions        *handler.ActionHandler
	Health         *handler.HealthHandler
	UserActions    *action.UserActions
	ProductActions *action.ProductActions
	Pages          *web.Pages
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, tokens middleware.TokenParser, views cache.ViewCache, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+HealthPath, h.Health.Check)

	// Read endpoints
	mux.HandleFunc("GET /api/users", h.Users.List)
	mux.HandleFunc("GET /api/users/{id}", h.Users.Get)
	mux.HandleFunc("GET /api/products", h.Products.List)
	mux.HandleFunc("GET /api/products/{id}", h.Products.Get)

	// Mutations
	mux.HandleFunc("POST /api/actions/users/create", h.Actions.Handle(h.UserActions.Create))
	mux.HandleFunc("POST /api/actions/users/update", h.Actions.Handle(h.UserActions.Update))
	mux.HandleFunc("POST /api/actions/users/delete", h.Actions.Handle(h.UserActions.Delete))
	mux.HandleFunc("POST /api/actions/products/create", h.Actions.Handle(h.ProductActions.Create))
	mux.HandleFunc("POST /api/actions/products/update", h.Actions.Handle(h.ProductActions.Update))
	mux.HandleFunc("POST /api/actions/products/delete", h.Actions.Handle(h.ProductActions.Delete))

	// Admin UI; rendered pages go through the view cache
	cached := middleware.CacheViews(views, logger)
	page := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, cached(fn))
	}

	page("GET /{$}", h.Pages.Dashboard)
	page("GET /users", h.Pages.Users)
	page("GET /users/new", h.Pages.NewUser)
	page("GET /users/{id}", h.Pages.User)
	page("GET /users/{id}/edit", h.Pages.EditUser)
	page("GET /products", h.Pages.Products)
	page("GET /products/new", h.Pages.NewProduct)
	page("GET /products/{id}", h.Pages.Product)
	page("GET /products/{id}/edit", h.Pages.EditProduct)

	mux.HandleFunc("POST /users/new", h.Pages.CreateUser)
	mux.HandleFunc("POST /users/{id}/edit", h.Pages.UpdateUser)
	mux.HandleFunc("POST /users/{id}/delete", h.Pages.DeleteUser)
	mux.HandleFunc("POST /products/new", h.Pages.CreateProduct)
	mux.HandleFunc("POST /products/{id}/edit", h.Pages.UpdateProduct)
	mux.HandleFunc("POST /products/{id}/delete", h.Pages.DeleteProduct)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Auth
	var handler http.Handler = mux
	handler = middleware.Auth(tokens, logger, HealthPath)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
