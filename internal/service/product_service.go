package service

import (
	"context"
	"fmt"

	"mini-admin/internal/model"
	"mini-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List returns one page of products. The page and the total are read
// concurrently against the same filter.
func (s *productService) List(ctx context.Context, q model.ProductQuery) (*model.ProductList, error) {
	page, limit := normalizePage(q.Page, q.Limit)
	filter := repository.ProductFilter{
		Search:   q.Search,
		Category: q.Category,
		MinPrice: priceBound(q.MinPrice),
		MaxPrice: priceBound(q.MaxPrice),
	}
	sort := productSort(q.SortBy, q.SortOrder)
	offset := model.NewPagination(page, limit, 0).Offset()

	var (
		products []model.ProductWithOwner
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.productRepo.List(gctx, filter, sort, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.productRepo.Count(gctx, filter)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).
			Int("page", page).
			Int("limit", limit).
			Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int64("total", total).
		Int("page", page).
		Str("sort", sort.Field).
		Msg("retrieved products")

	return &model.ProductList{
		Products:   products,
		Pagination: model.NewPagination(page, limit, total),
		Filters:    productFilters(q),
	}, nil
}

// Get returns a product with its owner.
func (s *productService) Get(ctx context.Context, id uuid.UUID) (*model.ProductWithOwner, error) {
	product, err := s.productRepo.GetWithOwner(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id.String()).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}
