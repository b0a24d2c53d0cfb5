// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"

	"keeper/internal/domain/entity"
	"keeper/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockPasswordHasher is a mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock that asserts its expectations on cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock that asserts its expectations on cleanup.
func NewMockTokenService(t testingT) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Issue(userID int64, email string) (string, error) {
	args := m.Called(userID, email)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string) (*service.Claims, error) {
	args := m.Called(token)

	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

// MockOAuthProvider is a mock of service.OAuthProvider.
type MockOAuthProvider struct {
	mock.Mock
}

// NewMockOAuthProvider creates a mock that asserts its expectations on cleanup.
func NewMockOAuthProvider(t testingT) *MockOAuthProvider {
	m := &MockOAuthProvider{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockOAuthProvider) Name() entity.ProviderType {
	return m.Called().Get(0).(entity.ProviderType)
}

func (m *MockOAuthProvider) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*entity.OAuthProfile, error) {
	args := m.Called(ctx, code)

	profile, _ := args.Get(0).(*entity.OAuthProfile)

	return profile, args.Error(1)
}

// MockStateSigner is a mock of service.StateSigner.
type MockStateSigner struct {
	mock.Mock
}

// NewMockStateSigner creates a mock that asserts its expectations on cleanup.
func NewMockStateSigner(t testingT) *MockStateSigner {
	m := &MockStateSigner{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockStateSigner) Sign(provider entity.ProviderType) (string, error) {
	args := m.Called(provider)

	return args.String(0), args.Error(1)
}

func (m *MockStateSigner) Verify(state string, provider entity.ProviderType) error {
	return m.Called(state, provider).Error(0)
}
