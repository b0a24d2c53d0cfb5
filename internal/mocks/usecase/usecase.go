// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"keeper/internal/domain/entity"
	"keeper/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserUsecase is a mock of usecase.UserUsecase.
type MockUserUsecase struct {
	mock.Mock
}

// NewMockUserUsecase creates a mock that asserts its expectations on cleanup.
func NewMockUserUsecase(t testingT) *MockUserUsecase {
	m := &MockUserUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*usecase.AuthOutput)

	return output, args.Error(1)
}

func (m *MockUserUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*usecase.AuthOutput)

	return output, args.Error(1)
}

func (m *MockUserUsecase) Me(ctx context.Context, userID int64) (*entity.User, error) {
	args := m.Called(ctx, userID)

	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

// MockOAuthUsecase is a mock of usecase.OAuthUsecase.
type MockOAuthUsecase struct {
	mock.Mock
}

// NewMockOAuthUsecase creates a mock that asserts its expectations on cleanup.
func NewMockOAuthUsecase(t testingT) *MockOAuthUsecase {
	m := &MockOAuthUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOAuthUsecase) Begin(ctx context.Context, provider entity.ProviderType) (string, error) {
	args := m.Called(ctx, provider)

	return args.String(0), args.Error(1)
}

func (m *MockOAuthUsecase) Complete(ctx context.Context, input usecase.OAuthCallbackInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)

	output, _ := args.Get(0).(*usecase.AuthOutput)

	return output, args.Error(1)
}

func (m *MockOAuthUsecase) HandleOAuthUser(ctx context.Context, profile *entity.OAuthProfile) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, profile)

	output, _ := args.Get(0).(*usecase.AuthOutput)

	return output, args.Error(1)
}

// MockNoteUsecase is a mock of usecase.NoteUsecase.
type MockNoteUsecase struct {
	mock.Mock
}

// NewMockNoteUsecase creates a mock that asserts its expectations on cleanup.
func NewMockNoteUsecase(t testingT) *MockNoteUsecase {
	m := &MockNoteUsecase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNoteUsecase) List(ctx context.Context, userID int64) ([]*entity.Note, error) {
	args := m.Called(ctx, userID)

	notes, _ := args.Get(0).([]*entity.Note)

	return notes, args.Error(1)
}

func (m *MockNoteUsecase) Create(ctx context.Context, userID int64, input usecase.NoteInput) (*entity.Note, error) {
	args := m.Called(ctx, userID, input)

	note, _ := args.Get(0).(*entity.Note)

	return note, args.Error(1)
}

func (m *MockNoteUsecase) Update(ctx context.Context, noteID, userID int64, input usecase.NoteInput) (*entity.Note, error) {
	args := m.Called(ctx, noteID, userID, input)

	note, _ := args.Get(0).(*entity.Note)

	return note, args.Error(1)
}

func (m *MockNoteUsecase) Delete(ctx context.Context, noteID, userID int64) error {
	return m.Called(ctx, noteID, userID).Error(0)
}
