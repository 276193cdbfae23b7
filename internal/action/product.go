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

// ProductActions implements the product mutations.
type ProductActions struct {
	products repository.ProductRepository
	users    repository.UserRepository
	notifier
}

// NewProductActions creates the product mutations.
func NewProductActions(
	products repository.ProductRepository,
	users repository.UserRepository,
	views cache.Revalidator,
	publisher events.Publisher,
	logger zerolog.Logger,
) *ProductActions {
	l := logger.With().Str("action", "product").Logger()
	return &ProductActions{
		products: products,
		users:    users,
		notifier: notifier{views: views, publisher: publisher, logger: l},
	}
}

// Create adds a product owned by an existing user.
func (a *ProductActions) Create(ctx context.Context, _ model.FormState, form url.Values) model.FormState {
	input, errs := validate.CreateProduct(form)
	if errs != nil {
		return model.Invalid(errs)
	}

	owner, err := a.users.GetByID(ctx, input.UserID)
	if err != nil {
		a.logger.Error().Err(err).Str("user_id", input.UserID.String()).Msg("failed to load owner")
		return model.FormError(msgProductCreateFailed)
	}
	if owner == nil {
		return model.FieldError(validate.FieldUserID, msgOwnerNotFound)
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
		Image:       input.Image,
		UserID:      input.UserID,
	}
	if err := a.products.Create(ctx, product); err != nil {
		if errors.Is(err, model.ErrForeignKey) {
			// The owner was deleted after the check above.
			return model.FieldError(validate.FieldUserID, msgOwnerNotFound)
		}
		a.logger.Error().Err(err).Msg("failed to create product")
		return model.FormError(msgProductCreateFailed)
	}

	id := product.ID.String()
	a.logger.Info().Str("product_id", id).Msg("product created")
	a.changed(ctx, events.New(events.ProductCreated, events.EntityProduct, id, product.Name),
		dashboardPath, productsPath, adminProductsPath, usersPath, userPath(product.UserID.String()))

	return model.Succeeded(productCreated(product.Name))
}

// Update changes the editable fields of an existing product. The owner is
// fixed at creation.
func (a *ProductActions) Update(ctx context.Context, _ model.FormState, form url.Values) model.FormState {
	input, errs := validate.UpdateProduct(form)
	if errs != nil {
		return model.Invalid(errs)
	}
	id := input.ID.String()

	existing, err := a.products.GetByID(ctx, input.ID)
	if err != nil {
		a.logger.Error().Err(err).Str("product_id", id).Msg("failed to load product")
		return model.FormError(msgProductUpdateFailed)
	}
	if existing == nil {
		return model.FormError(msgProductNotFound)
	}

	product := *existing
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.Category = input.Category
	product.Image = input.Image

	if err := a.products.Update(ctx, &product); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return model.FormError(msgProductNotFound)
		}
		a.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return model.FormError(msgProductUpdateFailed)
	}

	a.logger.Info().Str("product_id", id).Msg("product updated")
	a.changed(ctx, events.New(events.ProductUpdated, events.EntityProduct, id, product.Name),
		dashboardPath, productsPath, adminProductsPath, productPath(id), userPath(product.UserID.String()))

	return model.Succeeded(productUpdated(product.Name))
}

// Delete removes a product.
func (a *ProductActions) Delete(ctx context.Context, _ model.FormState, form url.Values) model.FormState {
	productID, errs := validate.DeleteByID(form)
	if errs != nil {
		return model.FormError(msgInvalidProduct)
	}
	id := productID.String()

	existing, err := a.products.GetByID(ctx, productID)
	if err != nil {
		a.logger.Error().Err(err).Str("product_id", id).Msg("failed to load product")
		return model.FormError(msgProductDeleteFailed)
	}
	if existing == nil {
		return model.FormError(msgProductNotFound)
	}

	if err := a.products.Delete(ctx, productID); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return model.FormError(msgProductNotFound)
		}
		a.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return model.FormError(msgProductDeleteFailed)
	}

	a.logger.Info().Str("product_id", id).Msg("product deleted")
	a.changed(ctx, events.New(events.ProductDeleted, events.EntityProduct, id, existing.Name),
		dashboardPath, productsPath, adminProductsPath, productPath(id), usersPath, userPath(existing.UserID.String()))

	return model.Succeeded(productDeleted(existing.Name))
}
