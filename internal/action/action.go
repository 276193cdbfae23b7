// Package action runs the create, update and delete flows behind the admin
// forms. Every flow validates its input, checks preconditions, writes, then
// revalidates cached views and publishes a change event. Failures are reported
// in the returned model.FormState; no error ever escapes to the caller.
package action

import (
	"context"
	"net/url"

	"mini-admin/internal/cache"
	"mini-admin/internal/events"
	"mini-admin/internal/model"

	"github.com/rs/zerolog"
)

// Func is the shape shared by every mutation. prev is the state returned by
// the previous submission of the same form.
type Func func(ctx context.Context, prev model.FormState, form url.Values) model.FormState

// PasswordHasher hashes plaintext passwords for storage.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// notifier tells the rest of the system that a write happened. Both steps
// are best-effort: the write is already committed.
type notifier struct {
	views     cache.Revalidator
	publisher events.Publisher
	logger    zerolog.Logger
}

func (n notifier) changed(ctx context.Context, event events.Event, paths ...string) {
	if err := n.views.Revalidate(ctx, paths...); err != nil {
		n.logger.Warn().Err(err).Strs("paths", paths).Msg("failed to revalidate views")
	}

	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn().Err(err).Str("type", event.Type).Str("id", event.ID).Msg("failed to publish event")
	}
}

// Paths of the rendered views affected by writes.
const (
	dashboardPath     = "/"
	usersPath         = "/users"
	adminUsersPath    = "/admin/users"
	productsPath      = "/products"
	adminProductsPath = "/admin/products"
)

func userPath(id string) string {
	return usersPath + "/" + id
}

func productPath(id string) string {
	return productsPath + "/" + id
}
