package impl

import (
	"context"
	"log/slog"
	"strconv"
	"unicode/utf8"

	deliverycontext "keeper/internal/delivery/context"
	"keeper/internal/domain/entity"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/domain/repository"
	"keeper/internal/domain/service"
	"keeper/internal/errors"
	"keeper/internal/usecase"

	"go.uber.org/fx"
)

// maxUsernameAttempts bounds the numeric suffixes tried when an OAuth
// username is already taken.
const maxUsernameAttempts = 20

// oauthService implements the OAuthUsecase interface.
type oauthService struct {
	txManager    repository.TransactionManager
	providers    map[entity.ProviderType]service.OAuthProvider
	stateSigner  service.StateSigner
	tokenService service.TokenService
	logger       *slog.Logger
}

// OAuthServiceParams holds dependencies for OAuthService, injected by Fx.
// Providers that are not configured are simply absent from the group.
type OAuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Providers    []service.OAuthProvider `group:"oauthProviders"`
	StateSigner  service.StateSigner
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewOAuthService is the constructor for oauthService.
func NewOAuthService(params OAuthServiceParams) usecase.OAuthUsecase {
	providers := make(map[entity.ProviderType]service.OAuthProvider, len(params.Providers))
	for _, provider := range params.Providers {
		if provider == nil {
			continue
		}
		providers[provider.Name()] = provider
	}

	return &oauthService{
		txManager:    params.TxManager,
		providers:    providers,
		stateSigner:  params.StateSigner,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *oauthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Begin signs a state bound to the provider and returns its consent URL.
func (srv *oauthService) Begin(ctx context.Context, providerType entity.ProviderType) (string, error) {
	provider, err := srv.provider(providerType)
	if err != nil {
		return "", err
	}

	state, err := srv.stateSigner.Sign(providerType)
	if err != nil {
		srv.log(ctx).Error("Failed to sign OAuth state", slog.String("provider", providerType.String()), slog.Any("error", err))

		return "", domainerrors.ErrInternalError.WrapMessage("failed to sign oauth state: " + err.Error())
	}

	return provider.AuthCodeURL(state), nil
}

// Complete verifies the state, exchanges the code and signs the user in.
func (srv *oauthService) Complete(ctx context.Context, input usecase.OAuthCallbackInput) (*usecase.AuthOutput, error) {
	provider, err := srv.provider(input.Provider)
	if err != nil {
		return nil, err
	}

	if err := srv.stateSigner.Verify(input.State, input.Provider); err != nil {
		srv.log(ctx).Warn("OAuth state rejected", slog.String("provider", input.Provider.String()), slog.Any("error", err))

		return nil, domainerrors.ErrOAuthStateInvalid.WrapMessage(err.Error())
	}

	if input.Code == "" {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("callback carried no authorization code")
	}

	profile, err := provider.Exchange(ctx, input.Code)
	if err != nil {
		srv.log(ctx).Warn("OAuth code exchange failed", slog.String("provider", input.Provider.String()), slog.Any("error", err))

		if _, ok := errors.AsType[domainerrors.AppError](err); ok {
			return nil, errors.Wrap(err, "oauth exchange failed")
		}

		return nil, domainerrors.ErrOAuthFailed.WrapMessage(err.Error())
	}
	if profile.Provider == "" {
		profile.Provider = input.Provider
	}

	return srv.HandleOAuthUser(ctx, profile)
}

// HandleOAuthUser maps a provider profile to a local account. Accounts are
// matched by email first, then by provider id; a link, once set, is never
// overwritten.
func (srv *oauthService) HandleOAuthUser(ctx context.Context, profile *entity.OAuthProfile) (*usecase.AuthOutput, error) {
	if profile == nil {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("empty oauth profile")
	}

	email := normalizeEmail(profile.Email)
	if email == "" {
		return nil, domainerrors.ErrOAuthMissingEmail.WrapMessage(profile.Provider.String() + " returned no email")
	}
	if utf8.RuneCountInString(email) > entity.EmailMaxLength {
		return nil, domainerrors.ErrEmailTooLong.WrapMessage(profile.Provider.String() + " email exceeds column width")
	}
	if !profile.Provider.IsValid() || profile.ProviderID == "" {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("oauth profile carries no provider identity")
	}

	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		user, err = srv.resolveUser(ctx, repoFactory.NewUserRepository(), profile, email)

		return err
	})
	if err != nil {
		srv.log(ctx).Warn("OAuth sign-in failed", slog.String("provider", profile.Provider.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute oauth user transaction")
	}

	token, err := srv.tokenService.Issue(user.ID, user.Email)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue session token: " + err.Error())
	}

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

func (srv *oauthService) resolveUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	profile *entity.OAuthProfile,
	email string,
) (*entity.User, error) {
	user, err := userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return srv.linkExistingUser(ctx, userRepo, user, profile)
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	// The provider account may already belong to a user whose email differs.
	user, err = userRepo.FindByProviderID(ctx, profile.Provider, profile.ProviderID)
	switch {
	case err == nil:
		srv.log(ctx).Debug("OAuth user matched by provider id", slog.Int64("userID", user.ID))

		return user, nil
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, errors.Wrap(err, "failed to find user by provider id")
	}

	return srv.createOAuthUser(ctx, userRepo, profile, email)
}

func (srv *oauthService) linkExistingUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	user *entity.User,
	profile *entity.OAuthProfile,
) (*entity.User, error) {
	linkedID := user.ProviderID(profile.Provider)
	if linkedID != "" {
		if linkedID != profile.ProviderID {
			srv.log(ctx).Warn("Email already linked to a different provider account",
				slog.Int64("userID", user.ID), slog.String("provider", profile.Provider.String()))
		}

		return user, nil
	}

	linked, err := userRepo.LinkProvider(ctx, user.ID, profile.Provider, profile.ProviderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to link provider")
	}
	if linked {
		user.LinkProvider(profile.Provider, profile.ProviderID)
		srv.log(ctx).Info("Linked OAuth provider", slog.Int64("userID", user.ID), slog.String("provider", profile.Provider.String()))
	}

	return user, nil
}

func (srv *oauthService) createOAuthUser(
	ctx context.Context,
	userRepo repository.UserRepository,
	profile *entity.OAuthProfile,
	email string,
) (*entity.User, error) {
	username, err := srv.availableUsername(ctx, userRepo, entity.UsernameFallback(profile.Username, profile.DisplayName, email))
	if err != nil {
		return nil, err
	}

	user := &entity.User{Email: email, Username: username}
	user.LinkProvider(profile.Provider, profile.ProviderID)

	if err := userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create oauth user")
	}

	srv.log(ctx).Info("Created user from OAuth profile", slog.Int64("userID", user.ID), slog.String("provider", profile.Provider.String()))

	return user, nil
}

// availableUsername returns base, or base followed by the first free numeric suffix.
func (srv *oauthService) availableUsername(ctx context.Context, userRepo repository.UserRepository, base string) (string, error) {
	if base == "" {
		base = "user"
	}

	for attempt := range maxUsernameAttempts + 1 {
		suffix := ""
		if attempt > 0 {
			suffix = strconv.Itoa(attempt)
		}
		candidate := entity.TruncateUsername(base, suffix)

		taken, err := userRepo.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", errors.Wrap(err, "failed to check username")
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", domainerrors.ErrUserAlreadyExists.WrapMessage("no free username for " + base)
}

func (srv *oauthService) provider(providerType entity.ProviderType) (service.OAuthProvider, error) {
	provider, ok := srv.providers[providerType]
	if !ok {
		return nil, domainerrors.ErrOAuthProviderNotFound.WrapMessage("provider " + providerType.String() + " not configured")
	}

	return provider, nil
}
