package seed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"mini-admin/internal/model"
	"mini-admin/internal/repository"
	"mini-admin/internal/validate"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Creator is a create mutation, as exposed by the user and product actions.
type Creator interface {
	Create(ctx context.Context, prev model.FormState, form url.Values) model.FormState
}

// UserLookup resolves owners by email.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// Result counts what a run did with each record.
type Result struct {
	Users    int `json:"users"`
	Products int `json:"products"`
	Posts    int `json:"posts"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Seeder applies a dataset. Users go first so products and posts can find
// their owners.
type Seeder struct {
	users    Creator
	products Creator
	posts    repository.PostRepository
	lookup   UserLookup
	logger   zerolog.Logger
}

// NewSeeder creates a seeder.
func NewSeeder(users, products Creator, posts repository.PostRepository, lookup UserLookup, logger zerolog.Logger) *Seeder {
	return &Seeder{
		users:    users,
		products: products,
		posts:    posts,
		lookup:   lookup,
		logger:   logger.With().Str("component", "seeder").Logger(),
	}
}

// Apply writes every record in ds. Users whose email already exists are
// skipped, so a dataset can be applied more than once. Records rejected by
// validation are counted as failed; only storage errors abort the run.
func (s *Seeder) Apply(ctx context.Context, ds *Dataset) (Result, error) {
	var res Result

	for _, rec := range ds.Users {
		existing, err := s.lookup.GetByEmail(ctx, rec.Email)
		if err != nil {
			return res, fmt.Errorf("failed to look up user %s: %w", rec.Email, err)
		}
		if existing != nil {
			res.Skipped++
			continue
		}

		form := url.Values{
			validate.FieldName:     {rec.Name},
			validate.FieldEmail:    {rec.Email},
			validate.FieldPassword: {rec.Password},
		}
		setIf(form, validate.FieldRole, rec.Role)

		s.count(s.users.Create(ctx, model.FormState{}, form), KindUser, rec.Email, &res.Users, &res)
	}

	for _, rec := range ds.Products {
		owner, err := s.owner(ctx, rec, &res)
		if err != nil {
			return res, err
		}
		if owner == uuid.Nil {
			continue
		}

		form := url.Values{
			validate.FieldName:   {rec.Name},
			validate.FieldPrice:  {strconv.FormatFloat(rec.Price, 'f', -1, 64)},
			validate.FieldStock:  {strconv.Itoa(rec.Stock)},
			validate.FieldUserID: {owner.String()},
		}
		setIf(form, validate.FieldDescription, rec.Description)
		setIf(form, validate.FieldCategory, rec.Category)
		setIf(form, validate.FieldImage, rec.Image)

		s.count(s.products.Create(ctx, model.FormState{}, form), KindProduct, rec.Name, &res.Products, &res)
	}

	for _, rec := range ds.Posts {
		owner, err := s.owner(ctx, rec, &res)
		if err != nil {
			return res, err
		}
		if owner == uuid.Nil {
			continue
		}
		if rec.Title == "" {
			s.logger.Warn().Str("owner", rec.Owner).Msg("post without title")
			res.Failed++
			continue
		}

		post := &model.Post{Title: rec.Title, Published: rec.Published, UserID: owner}
		if rec.Content != "" {
			post.Content = &rec.Content
		}
		if err := s.posts.Create(ctx, post); err != nil {
			if errors.Is(err, model.ErrForeignKey) {
				res.Failed++
				continue
			}
			return res, fmt.Errorf("failed to create post %q: %w", rec.Title, err)
		}
		res.Posts++
	}

	s.logger.Info().
		Int("users", res.Users).
		Int("products", res.Products).
		Int("posts", res.Posts).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Msg("seed applied")

	return res, nil
}

// owner resolves rec.Owner. A missing owner counts as a failed record and
// yields uuid.Nil.
func (s *Seeder) owner(ctx context.Context, rec Record, res *Result) (uuid.UUID, error) {
	u, err := s.lookup.GetByEmail(ctx, rec.Owner)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up owner %s: %w", rec.Owner, err)
	}
	if u == nil {
		s.logger.Warn().Str("kind", rec.Kind).Str("owner", rec.Owner).Msg("owner not found")
		res.Failed++
		return uuid.Nil, nil
	}
	return u.ID, nil
}

func (s *Seeder) count(state model.FormState, kind, ref string, ok *int, res *Result) {
	if state.Success {
		*ok++
		return
	}
	s.logger.Warn().
		Str("kind", kind).
		Str("record", ref).
		Interface("errors", state.Errors).
		Msg("record rejected")
	res.Failed++
}

func setIf(form url.Values, field, v string) {
	if v != "" {
		form.Set(field, v)
	}
}
