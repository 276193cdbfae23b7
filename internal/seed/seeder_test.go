package seed

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"mini-admin/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCreator is a mock implementation of Creator.
type MockCreator struct {
	mock.Mock
}

func (m *MockCreator) Create(ctx context.Context, prev model.FormState, form url.Values) model.FormState {
	args := m.Called(ctx, prev, form)
	return args.Get(0).(model.FormState)
}

// MockUserLookup is a mock implementation of UserLookup.
type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockPostRepository is a mock implementation of PostRepository.
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

type seederFixture struct {
	users    *MockCreator
	products *MockCreator
	posts    *MockPostRepository
	lookup   *MockUserLookup
	seeder   *Seeder
}

func newSeederFixture() *seederFixture {
	f := &seederFixture{
		users:    new(MockCreator),
		products: new(MockCreator),
		posts:    new(MockPostRepository),
		lookup:   new(MockUserLookup),
	}
	f.seeder = NewSeeder(f.users, f.products, f.posts, f.lookup, zerolog.Nop())
	return f
}

func (f *seederFixture) assertExpectations(t *testing.T) {
	f.users.AssertExpectations(t)
	f.products.AssertExpectations(t)
	f.posts.AssertExpectations(t)
	f.lookup.AssertExpectations(t)
}

func TestSeeder_Apply(t *testing.T) {
	f := newSeederFixture()
	alice := &model.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	bob := &model.User{ID: uuid.New(), Name: "Bob", Email: "bob@example.com"}

	ds := &Dataset{
		Users: []Record{
			{Kind: KindUser, Name: "Alice", Email: "alice@example.com", Password: "secret1", Role: "admin"},
			{Kind: KindUser, Name: "Bob", Email: "bob@example.com", Password: "secret2"},
		},
		Products: []Record{
			{Kind: KindProduct, Name: "Desk", Price: 120.5, Stock: 3, Owner: "alice@example.com"},
			{Kind: KindProduct, Name: "Lamp", Price: 10, Owner: "ghost@example.com"},
		},
		Posts: []Record{
			{Kind: KindPost, Title: "Hello", Content: "First post", Published: true, Owner: "alice@example.com"},
		},
	}

	// Alice is new until she is created; Bob already exists.
	f.lookup.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, nil).Once()
	f.lookup.On("GetByEmail", mock.Anything, "alice@example.com").Return(alice, nil)
	f.lookup.On("GetByEmail", mock.Anything, "bob@example.com").Return(bob, nil)
	f.lookup.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	f.users.On("Create", mock.Anything, model.FormState{}, mock.MatchedBy(func(form url.Values) bool {
		return form.Get("name") == "Alice" &&
			form.Get("email") == "alice@example.com" &&
			form.Get("password") == "secret1" &&
			form.Get("role") == "admin"
	})).Return(model.Succeeded("created")).Once()

	f.products.On("Create", mock.Anything, model.FormState{}, mock.MatchedBy(func(form url.Values) bool {
		_, hasDescription := form["description"]
		return form.Get("name") == "Desk" &&
			form.Get("price") == "120.5" &&
			form.Get("stock") == "3" &&
			form.Get("userId") == alice.ID.String() &&
			!hasDescription
	})).Return(model.Succeeded("created")).Once()

	f.posts.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
		return p.Title == "Hello" &&
			p.UserID == alice.ID &&
			p.Published &&
			p.Content != nil && *p.Content == "First post"
	})).Return(nil).Once()

	res, err := f.seeder.Apply(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 1, Products: 1, Posts: 1, Skipped: 1, Failed: 1}, res)

	f.assertExpectations(t)
}

func TestSeeder_Apply_RejectedRecords(t *testing.T) {
	f := newSeederFixture()
	alice := &model.User{ID: uuid.New(), Email: "alice@example.com"}

	ds := &Dataset{
		Users:    []Record{{Kind: KindUser, Name: "", Email: "new@example.com", Password: "x"}},
		Products: []Record{{Kind: KindProduct, Name: "Desk", Price: -1, Owner: "alice@example.com"}},
		Posts: []Record{
			{Kind: KindPost, Title: "", Owner: "alice@example.com"},
			{Kind: KindPost, Title: "Orphan", Owner: "alice@example.com"},
		},
	}

	f.lookup.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	f.lookup.On("GetByEmail", mock.Anything, "alice@example.com").Return(alice, nil)

	f.users.On("Create", mock.Anything, model.FormState{}, mock.Anything).
		Return(model.FieldError("name", "名前は必須です")).Once()
	f.products.On("Create", mock.Anything, model.FormState{}, mock.Anything).
		Return(model.FieldError("price", "価格は0以上である必要があります")).Once()
	f.posts.On("Create", mock.Anything, mock.Anything).
		Return(model.ErrForeignKey).Once()

	res, err := f.seeder.Apply(context.Background(), ds)
	require.NoError(t, err)
	assert.Equal(t, Result{Failed: 4}, res)

	f.assertExpectations(t)
}

func TestSeeder_Apply_StorageErrorsAbort(t *testing.T) {
	dbErr := errors.New("connection refused")

	t.Run("User lookup", func(t *testing.T) {
		f := newSeederFixture()
		f.lookup.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, dbErr)

		res, err := f.seeder.Apply(context.Background(), &Dataset{
			Users: []Record{{Kind: KindUser, Email: "alice@example.com"}},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, Result{}, res)
		f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Owner lookup", func(t *testing.T) {
		f := newSeederFixture()
		f.lookup.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, dbErr)

		_, err := f.seeder.Apply(context.Background(), &Dataset{
			Products: []Record{{Kind: KindProduct, Name: "Desk", Owner: "alice@example.com"}},
		})
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Post write", func(t *testing.T) {
		f := newSeederFixture()
		f.lookup.On("GetByEmail", mock.Anything, "alice@example.com").
			Return(&model.User{ID: uuid.New()}, nil)
		f.posts.On("Create", mock.Anything, mock.Anything).Return(dbErr)

		_, err := f.seeder.Apply(context.Background(), &Dataset{
			Posts: []Record{{Kind: KindPost, Title: "Hello", Owner: "alice@example.com"}},
		})
		assert.ErrorIs(t, err, dbErr)
	})
}
