package web

import (
	"context"
	"net/url"

	"mini-admin/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, q model.UserQuery) (*model.UserList, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserList), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id uuid.UUID) (*model.UserDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserDetail), args.Error(1)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context, q model.ProductQuery) (*model.ProductList, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductList), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id uuid.UUID) (*model.ProductWithOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductWithOwner), args.Error(1)
}

// fakeMutations records the last form and returns a canned state.
type fakeMutations struct {
	state model.FormState
	calls []string
	form  url.Values
}

func (f *fakeMutations) run(name string, form url.Values) model.FormState {
	f.calls = append(f.calls, name)
	f.form = form
	return f.state
}

func (f *fakeMutations) Create(_ context.Context, _ model.FormState, form url.Values) model.FormState {
	return f.run("create", form)
}

func (f *fakeMutations) Update(_ context.Context, _ model.FormState, form url.Values) model.FormState {
	return f.run("update", form)
}

func (f *fakeMutations) Delete(_ context.Context, _ model.FormState, form url.Values) model.FormState {
	return f.run("delete", form)
}
