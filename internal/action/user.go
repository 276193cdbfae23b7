package action

import (
	"context"
	"errors"
	"net/url"

	"mini-admin/internal/cache"
	"mini-admin/internal/events"
	"mini-admin/internal/model"
	"mini-admin/internal/repository"
	"mini-admin/internal/validate"

	"github.com/rs/zerolog"
)

// UserActions implements the user mutations.
type UserActions struct {
	users  repository.UserRepository
	hasher PasswordHasher
	notifier
}

// NewUserActions creates the user mutations.
func NewUserActions(
	users repository.UserRepository,
	hasher PasswordHasher,
	views cache.Revalidator,
	publisher events.Publisher,
	logger zerolog.Logger,
) *UserActions {
	l := logger.With().Str("action", "user").Logger()
	return &UserActions{
		users:    users,
		hasher:   hasher,
		notifier: notifier{views: views, publisher: publisher, logger: l},
	}
}

// Create registers a new user. The email must not be in use.
func (a *UserActions) Create(ctx context.Context, _ model.FormState, form url.Values) model.FormState {
	input, errs := validate.CreateUser(form)
	if errs != nil {
		return model.Invalid(errs)
	}

	existing, err := a.users.GetByEmail(ctx, input.Email)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to check email availability")
		return model.FormError(msgUserCreateFailed)
	}
	if existing != nil {
		a.logger.Debug().Msg("email already in use")
		return model.FieldError(validate.FieldEmail, msgDuplicateEmail)
	}

	hash, err := a.hasher.Hash(input.Password)
	if err != nil {
		a.logger.Error().Err(err).Msg("failed to hash password")
		return model.FormError(msgUserCreateFailed)
	}

	user := &model.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := a.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.FieldError(validate.FieldEmail, msgDuplicateEmail)
		}
		a.logger.Error().Err(err).Msg("failed to create user")
		return model.FormError(msgUserCreateFailed)
	}

	a.logger.Info().Str("user_id", user.ID.String()).Msg("user created")
	a.changed(ctx, events.New(events.UserCreated, events.EntityUser, user.ID.String(), user.Name),
		dashboardPath, usersPath, adminUsersPath, productsPath)

	return model.Succeeded(userCreated(user.Name))
}

// Update changes name, email and role of an existing user. The uniqueness
// check is skipped when the email is unchanged.
func (a *UserActions) Update(ctx context.Context, _ model.FormState, form url.Values) model.FormState {
	input, errs := validate.UpdateUser(form)
	if errs != nil {
		return model.Invalid(errs)
	}
	id := input.ID.String()

	existing, err := a.users.GetByID(ctx, input.ID)
	if err != nil {
		a.logger.Error().Err(err).Str("user_id", id).Msg("failed to load user")
		return model.FormError(msgUserUpdateFailed)
	}
	if existing == nil {
		return model.FormError(msgUserNotFound)
	}

	if input.Email != existing.Email {
		taken, err := a.users.GetByEmail(ctx, input.Email)
		if err != nil {
			a.logger.Error().Err(err).Str("user_id", id).Msg("failed to check email availability")
			return model.FormError(msgUserUpdateFailed)
		}
		if taken != nil {
			return model.FieldError(validate.FieldEmail, msgDuplicateEmail)
		}
	}

	user := *existing
	user.Name = input.Name
	user.Email = input.Email
	user.Role = input.Role

	if err := a.users.Update(ctx, &user); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			return model.FormError(msgUserNotFound)
		case errors.Is(err, model.ErrDuplicateEmail):
			return model.FieldError(validate.FieldEmail, msgDuplicateEmail)
		}
		a.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return model.FormError(msgUserUpdateFailed)
	}

	a.logger.Info().Str("user_id", id).Msg("user updated")
	a.changed(ctx, events.New(events.UserUpdated, events.EntityUser, id, user.Name),
		dashboardPath, usersPath, adminUsersPath, userPath(id), productsPath)

	return model.Succeeded(userUpdated(user.Name))
}

// Delete removes a user that nothing references. Dependents are never
// cascaded.
func (a *UserActions) Delete(ctx context.Context, _ model.FormState, form url.Values) model.FormState {
	userID, errs := validate.DeleteByID(form)
	if errs != nil {
		return model.FormError(msgInvalidUserID)
	}
	id := userID.String()

	existing, err := a.users.GetByID(ctx, userID)
	if err != nil {
		a.logger.Error().Err(err).Str("user_id", id).Msg("failed to load user")
		return model.FormError(msgUserDeleteFailed)
	}
	if existing == nil {
		return model.FormError(msgUserNotFound)
	}

	if state, blocked := a.blockedByDependents(ctx, existing); blocked {
		return state
	}

	if err := a.users.Delete(ctx, userID); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			return model.FormError(msgUserNotFound)
		case errors.Is(err, model.ErrForeignKey):
			// A dependent was added after the check above.
			if state, blocked := a.blockedByDependents(ctx, existing); blocked {
				return state
			}
		}
		a.logger.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return model.FormError(msgUserDeleteFailed)
	}

	a.logger.Info().Str("user_id", id).Msg("user deleted")
	a.changed(ctx, events.New(events.UserDeleted, events.EntityUser, id, existing.Name),
		dashboardPath, usersPath, adminUsersPath, userPath(id), productsPath)

	return model.Succeeded(userDeleted(existing.Name))
}

// blockedByDependents reports whether user still has posts or products, and
// the state to return if so.
func (a *UserActions) blockedByDependents(ctx context.Context, user *model.User) (model.FormState, bool) {
	counts, err := a.users.CountDependents(ctx, user.ID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.FormError(msgUserNotFound), true
		}
		a.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to count dependents")
		return model.FormError(msgUserDeleteFailed), true
	}

	if counts.HasDependents() {
		a.logger.Warn().
			Str("user_id", user.ID.String()).
			Int("posts", counts.Posts).
			Int("products", counts.Products).
			Msg("user has dependents, refusing delete")
		return model.FormError(userHasDependents(counts.Posts, counts.Products)), true
	}

	return model.FormState{}, false
}
