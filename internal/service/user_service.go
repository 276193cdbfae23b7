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

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// List returns one page of users. The page and the total are read
// concurrently against the same filter.
func (s *userService) List(ctx context.Context, q model.UserQuery) (*model.UserList, error) {
	page, limit := normalizePage(q.Page, q.Limit)
	filter := repository.UserFilter{Search: q.Search, Role: q.Role}
	offset := model.NewPagination(page, limit, 0).Offset()

	var (
		users []model.UserSummary
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.userRepo.List(gctx, filter, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.userRepo.Count(gctx, filter)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).
			Int("page", page).
			Int("limit", limit).
			Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.logger.Debug().
		Int("count", len(users)).
		Int64("total", total).
		Int("page", page).
		Msg("retrieved users")

	return &model.UserList{
		Users:      users,
		Pagination: model.NewPagination(page, limit, total),
	}, nil
}

// Get returns a user with its posts and products.
func (s *userService) Get(ctx context.Context, id uuid.UUID) (*model.UserDetail, error) {
	user, err := s.userRepo.GetDetail(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		s.logger.Debug().Str("user_id", id.String()).Msg("user not found")
		return nil, model.ErrUserNotFound
	}

	return user, nil
}
