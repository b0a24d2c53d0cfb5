package impl

import (
	"context"
	"strings"
	"unicode/utf8"
	"testing"

	"keeper/internal/domain/entity"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/domain/repository"
	"keeper/internal/domain/service"
	"keeper/internal/errors"
	mockRepo "keeper/internal/mocks/repository"
	mockSvc "keeper/internal/mocks/service"
	"keeper/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type oauthServiceFixtures struct {
	service      usecase.OAuthUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	github       *mockSvc.MockOAuthProvider
	stateSigner  *mockSvc.MockStateSigner
	tokenService *mockSvc.MockTokenService
}

func createTestOAuthService(t *testing.T) oauthServiceFixtures {
	f := oauthServiceFixtures{
		txManager:    mockRepo.NewMockTransactionManager(t),
		userRepo:     mockRepo.NewMockUserRepository(t),
		github:       mockSvc.NewMockOAuthProvider(t),
		stateSigner:  mockSvc.NewMockStateSigner(t),
		tokenService: mockSvc.NewMockTokenService(t),
	}
	f.github.On("Name").Return(entity.ProviderGitHub)

	f.service = NewOAuthService(OAuthServiceParams{
		TxManager:    f.txManager,
		Providers:    []service.OAuthProvider{f.github, nil},
		StateSigner:  f.stateSigner,
		TokenService: f.tokenService,
		Logger:       newDiscardLogger(),
	})

	return f
}

func (f oauthServiceFixtures) expectTx() {
	f.txManager.On("Execute", mock.Anything, mock.Anything).
		Return(mockRepo.RunWith(&mockRepo.StaticRepositoryFactory{Users: f.userRepo})).
		Once()
}

func githubProfile() *entity.OAuthProfile {
	return &entity.OAuthProfile{
		Provider:    entity.ProviderGitHub,
		ProviderID:  "42",
		Email:       "Octo@Example.com",
		Username:    "octocat",
		DisplayName: "The Octocat",
	}
}

func TestOAuthService_Begin(t *testing.T) {
	f := createTestOAuthService(t)
	ctx := context.Background()

	f.stateSigner.On("Sign", entity.ProviderGitHub).Return("signed-state", nil)
	f.github.On("AuthCodeURL", "signed-state").Return("https://github.example/authorize?state=signed-state")

	url, err := f.service.Begin(ctx, entity.ProviderGitHub)

	require.NoError(t, err)
	assert.Equal(t, "https://github.example/authorize?state=signed-state", url)
}

func TestOAuthService_Begin_UnknownProvider(t *testing.T) {
	f := createTestOAuthService(t)

	_, err := f.service.Begin(context.Background(), entity.ProviderGoogle)

	assert.ErrorIs(t, err, domainerrors.ErrOAuthProviderNotFound)
}

func TestOAuthService_Complete_InvalidState(t *testing.T) {
	f := createTestOAuthService(t)

	f.stateSigner.On("Verify", "forged", entity.ProviderGitHub).Return(errors.New("signature mismatch"))

	_, err := f.service.Complete(context.Background(), usecase.OAuthCallbackInput{
		Provider: entity.ProviderGitHub,
		Code:     "code",
		State:    "forged",
	})

	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)
	f.github.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
}

func TestOAuthService_Complete_ExchangeFailure(t *testing.T) {
	f := createTestOAuthService(t)
	ctx := context.Background()

	f.stateSigner.On("Verify", "state", entity.ProviderGitHub).Return(nil)
	f.github.On("Exchange", ctx, "bad-code").Return(nil, errors.New("bad_verification_code"))

	_, err := f.service.Complete(ctx, usecase.OAuthCallbackInput{
		Provider: entity.ProviderGitHub,
		Code:     "bad-code",
		State:    "state",
	})

	assert.ErrorIs(t, err, domainerrors.ErrOAuthFailed)
}

func TestOAuthService_Complete_MissingCode(t *testing.T) {
	f := createTestOAuthService(t)

	f.stateSigner.On("Verify", "state", entity.ProviderGitHub).Return(nil)

	_, err := f.service.Complete(context.Background(), usecase.OAuthCallbackInput{
		Provider: entity.ProviderGitHub,
		State:    "state",
	})

	assert.ErrorIs(t, err, domainerrors.ErrOAuthFailed)
}

func TestOAuthService_Complete_CreatesNewUser(t *testing.T) {
	f := createTestOAuthService(t)
	ctx := context.Background()

	f.stateSigner.On("Verify", "state", entity.ProviderGitHub).Return(nil)
	f.github.On("Exchange", ctx, "code").Return(githubProfile(), nil)
	f.expectTx()
	f.userRepo.On("FindByEmail", ctx, "octo@example.com").Return(nil, repository.ErrUserNotFound)
	f.userRepo.On("FindByProviderID", ctx, entity.ProviderGitHub, "42").Return(nil, repository.ErrUserNotFound)
	f.userRepo.On("ExistsByUsername", ctx, "octocat").Return(false, nil)
	f.userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "octo@example.com" && u.Username == "octocat" &&
			u.GitHubID != nil && *u.GitHubID == "42" && u.PasswordHash == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.User).ID = 11
	}).Return(nil)
	f.tokenService.On("Issue", int64(11), "octo@example.com").Return("token-11", nil)

	output, err := f.service.Complete(ctx, usecase.OAuthCallbackInput{
		Provider: entity.ProviderGitHub,
		Code:     "code",
		State:    "state",
	})

	require.NoError(t, err)
	assert.Equal(t, "token-11", output.Token)
	assert.Equal(t, "octocat", output.User.Username)
}

func TestOAuthService_HandleOAuthUser_MissingEmail(t *testing.T) {
	f := createTestOAuthService(t)
	profile := githubProfile()
	profile.Email = "  "

	_, err := f.service.HandleOAuthUser(context.Background(), profile)

	assert.ErrorIs(t, err, domainerrors.ErrOAuthMissingEmail)
}

func TestOAuthService_HandleOAuthUser_LinksExistingEmail(t *testing.T) {
	f := createTestOAuthService(t)
	ctx := context.Background()
	existing := &entity.User{ID: 5, Email: "octo@example.com", Username: "octo", PasswordHash: strPtr("hashed")}

	f.expectTx()
	f.userRepo.On("FindByEmail", ctx, "octo@example.com").Return(existing, nil)
	f.userRepo.On("LinkProvider", ctx, int64(5), entity.ProviderGitHub, "42").Return(true, nil)
	f.tokenService.On("Issue", int64(5), "octo@example.com").Return("token-5", nil)

	output, err := f.service.HandleOAuthUser(ctx, githubProfile())

	require.NoError(t, err)
	assert.Equal(t, "42", output.User.ProviderID(entity.ProviderGitHub))
	assert.True(t, output.User.HasPassword())
}

func TestOAuthService_HandleOAuthUser_NeverOverwritesLink(t *testing.T) {
	f := createTestOAuthService(t)
	ctx := context.Background()
	existing := &entity.User{ID: 5, Email: "octo@example.com", Username: "octo", GitHubID: strPtr("7")}

	f.expectTx()
	f.userRepo.On("FindByEmail", ctx, "octo@example.com").Return(existing, nil)
	f.tokenService.On("Issue", int64(5), "octo@example.com").Return("token-5", nil)

	output, err := f.service.HandleOAuthUser(ctx, githubProfile())

	require.NoError(t, err)
	assert.Equal(t, "7", output.User.ProviderID(entity.ProviderGitHub))
	f.userRepo.AssertNotCalled(t, "LinkProvider", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOAuthService_HandleOAuthUser_MatchesByProviderID(t *testing.T) {
	f := createTestOAuthService(t)
	ctx := context.Background()
	existing := &entity.User{ID: 8, Email: "old@example.com", Username: "octocat", GitHubID: strPtr("42")}

	f.expectTx()
	f.userRepo.On("FindByEmail", ctx, "octo@example.com").Return(nil, repository.ErrUserNotFound)
	f.userRepo.On("FindByProviderID", ctx, entity.ProviderGitHub, "42").Return(existing, nil)
	f.tokenService.On("Issue", int64(8), "old@example.com").Return("token-8", nil)

	output, err := f.service.HandleOAuthUser(ctx, githubProfile())

	require.NoError(t, err)
	assert.Same(t, existing, output.User)
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOAuthService_HandleOAuthUser_UsernameFallbackAndSuffix(t *testing.T) {
	f := createTestOAuthService(t)
	ctx := context.Background()
	profile := &entity.OAuthProfile{
		Provider:   entity.ProviderGoogle,
		ProviderID: "g-1",
		Email:      "jane@example.com",
	}

	f.expectTx()
	f.userRepo.On("FindByEmail", ctx, "jane@example.com").Return(nil, repository.ErrUserNotFound)
	f.userRepo.On("FindByProviderID", ctx, entity.ProviderGoogle, "g-1").Return(nil, repository.ErrUserNotFound)
	f.userRepo.On("ExistsByUsername", ctx, "jane").Return(true, nil)
	f.userRepo.On("ExistsByUsername", ctx, "jane1").Return(true, nil)
	f.userRepo.On("ExistsByUsername", ctx, "jane2").Return(false, nil)
	f.userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "jane2" && u.GoogleID != nil && *u.GoogleID == "g-1"
	})).Return(nil)
	f.tokenService.On("Issue", mock.Anything, "jane@example.com").Return("token", nil)

	output, err := f.service.HandleOAuthUser(ctx, profile)

	require.NoError(t, err)
	assert.Equal(t, "jane2", output.User.Username)
}

func TestOAuthService_HandleOAuthUser_UsernameExhausted(t *testing.T) {
	f := createTestOAuthService(t)
	ctx := context.Background()

	f.expectTx()
	f.userRepo.On("FindByEmail", ctx, "octo@example.com").Return(nil, repository.ErrUserNotFound)
	f.userRepo.On("FindByProviderID", ctx, entity.ProviderGitHub, "42").Return(nil, repository.ErrUserNotFound)
	f.userRepo.On("ExistsByUsername", ctx, mock.AnythingOfType("string")).Return(true, nil)

	_, err := f.service.HandleOAuthUser(ctx, githubProfile())

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	f.userRepo.AssertNumberOfCalls(t, "ExistsByUsername", maxUsernameAttempts+1)
}

func TestOAuthService_HandleOAuthUser_EmailTooLong(t *testing.T) {
	f := createTestOAuthService(t)
	profile := githubProfile()
	profile.Email = strings.Repeat("o", 250) + "@example.com"

	_, err := f.service.HandleOAuthUser(context.Background(), profile)

	assert.ErrorIs(t, err, domainerrors.ErrEmailTooLong)
	f.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestOAuthService_HandleOAuthUser_TruncatesLongDisplayName(t *testing.T) {
	f := createTestOAuthService(t)
	ctx := context.Background()
	profile := &entity.OAuthProfile{
		Provider:    entity.ProviderGoogle,
		ProviderID:  "g-2",
		Email:       "long@example.com",
		DisplayName: strings.Repeat("n", 300),
	}
	base := strings.Repeat("n", entity.UsernameMaxLength)

	f.expectTx()
	f.userRepo.On("FindByEmail", ctx, "long@example.com").Return(nil, repository.ErrUserNotFound)
	f.userRepo.On("FindByProviderID", ctx, entity.ProviderGoogle, "g-2").Return(nil, repository.ErrUserNotFound)
	f.userRepo.On("ExistsByUsername", ctx, base).Return(true, nil)
	f.userRepo.On("ExistsByUsername", ctx, base[:entity.UsernameMaxLength-1]+"1").Return(false, nil)
	f.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	f.tokenService.On("Issue", mock.Anything, "long@example.com").Return("token", nil)

	output, err := f.service.HandleOAuthUser(ctx, profile)

	require.NoError(t, err)
	assert.Equal(t, entity.UsernameMaxLength, utf8.RuneCountInString(output.User.Username))
	assert.True(t, strings.HasSuffix(output.User.Username, "n1"))
}
