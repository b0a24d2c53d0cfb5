// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"

	"keeper/internal/domain/entity"
	"keeper/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserRepository is a mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock that asserts its expectations on cleanup.
func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)

	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)

	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) FindByProviderID(ctx context.Context, provider entity.ProviderType, providerID string) (*entity.User, error) {
	args := m.Called(ctx, provider, providerID)

	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)

	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) LinkProvider(ctx context.Context, userID int64, provider entity.ProviderType, providerID string) (bool, error) {
	args := m.Called(ctx, userID, provider, providerID)

	return args.Bool(0), args.Error(1)
}

// MockNoteRepository is a mock of repository.NoteRepository.
type MockNoteRepository struct {
	mock.Mock
}

// NewMockNoteRepository creates a mock that asserts its expectations on cleanup.
func NewMockNoteRepository(t testingT) *MockNoteRepository {
	m := &MockNoteRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNoteRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Note, error) {
	args := m.Called(ctx, userID)

	notes, _ := args.Get(0).([]*entity.Note)

	return notes, args.Error(1)
}

func (m *MockNoteRepository) FindByID(ctx context.Context, id int64) (*entity.Note, error) {
	args := m.Called(ctx, id)

	note, _ := args.Get(0).(*entity.Note)

	return note, args.Error(1)
}

func (m *MockNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *MockNoteRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// MockTransactionManager is a mock of repository.TransactionManager.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock that asserts its expectations on cleanup.
func NewMockTransactionManager(t testingT) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Execute returns the configured error, or calls the configured function
// when Return was given a func(context.Context, func(repository.RepositoryFactory) error) error.
func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)

	if rf, ok := args.Get(0).(func(context.Context, func(repository.RepositoryFactory) error) error); ok {
		return rf(ctx, fn)
	}

	return args.Error(0)
}

// RunWith makes Execute hand factory to the transaction body and return its result.
func RunWith(factory repository.RepositoryFactory) func(context.Context, func(repository.RepositoryFactory) error) error {
	return func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
		return fn(factory)
	}
}

// StaticRepositoryFactory returns fixed repositories from every call.
type StaticRepositoryFactory struct {
	Users repository.UserRepository
	Notes repository.NoteRepository
}

func (f *StaticRepositoryFactory) NewUserRepository() repository.UserRepository {
	return f.Users
}

func (f *StaticRepositoryFactory) NewNoteRepository() repository.NoteRepository {
	return f.Notes
}

func userOrNil(v any) *entity.User {
	user, _ := v.(*entity.User)

	return user
}
