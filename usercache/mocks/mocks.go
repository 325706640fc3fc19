package mocks

import (
	"context"
	"time"

	"github.com/goliatone/go-user-records/cache"
	"github.com/goliatone/go-user-records/storage"
	"github.com/goliatone/go-user-records/users"
	"github.com/stretchr/testify/mock"
)

var (
	_ cache.Service      = (*MockCache)(nil)
	_ storage.Repository = (*MockRepository)(nil)
)

// MockCache is a mock implementation of cache.Service.
type MockCache struct {
	mock.Mock
}

// Check mocks the Check method.
func (m *MockCache) Check(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

// Get mocks the Get method.
func (m *MockCache) Get(ctx context.Context, key string) (*users.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*users.User), args.Error(1)
}

// Set mocks the Set method.
func (m *MockCache) Set(ctx context.Context, key string, user *users.User) error {
	return m.Called(ctx, key, user).Error(0)
}

// SetWithTTL mocks the SetWithTTL method.
func (m *MockCache) SetWithTTL(ctx context.Context, key string, user *users.User, ttl time.Duration) error {
	return m.Called(ctx, key, user, ttl).Error(0)
}

// Delete mocks the Delete method.
func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// Close mocks the Close method.
func (m *MockCache) Close() error {
	return m.Called().Error(0)
}

// MockRepository is a mock implementation of storage.Repository.
type MockRepository struct {
	mock.Mock
}

// Check mocks the Check method.
func (m *MockRepository) Check(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

// SelectByID mocks the SelectByID method.
func (m *MockRepository) SelectByID(ctx context.Context, id int64) (*users.User, error) {
	args := m.Called(ctx, id)
	return userResult(args)
}

// Create mocks the Create method.
func (m *MockRepository) Create(ctx context.Context, user users.User) (*users.User, error) {
	args := m.Called(ctx, user)
	return userResult(args)
}

// UpdatePartial mocks the UpdatePartial method.
func (m *MockRepository) UpdatePartial(ctx context.Context, id int64, partial users.PartialUser) (*users.User, error) {
	args := m.Called(ctx, id, partial)
	return userResult(args)
}

// Replace mocks the Replace method.
func (m *MockRepository) Replace(ctx context.Context, id int64, user users.User) (*users.User, error) {
	args := m.Called(ctx, id, user)
	return userResult(args)
}

// DeleteByID mocks the DeleteByID method.
func (m *MockRepository) DeleteByID(ctx context.Context, id int64) (*users.User, error) {
	args := m.Called(ctx, id)
	return userResult(args)
}

// ExistsByField mocks the ExistsByField method.
func (m *MockRepository) ExistsByField(ctx context.Context, field users.Field, value string) (bool, error) {
	args := m.Called(ctx, field, value)
	return args.Bool(0), args.Error(1)
}

func userResult(args mock.Arguments) (*users.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*users.User), args.Error(1)
}
