// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"keeper/config"
	deliverycontext "keeper/internal/delivery/context"
	"keeper/internal/domain/entity"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/domain/repository"
	"keeper/internal/domain/service"
	"keeper/internal/errors"
	"keeper/internal/usecase"

	"go.uber.org/fx"
)

const defaultMinPasswordLength = 6

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	minPasswordLength int
	logger            *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	minPasswordLength := defaultMinPasswordLength
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.MinPasswordLength > 0 {
		minPasswordLength = params.Config.Auth.MinPasswordLength
	}

	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		minPasswordLength: minPasswordLength,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a password account and signs it in.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	username := strings.TrimSpace(input.Username)

	if email == "" || username == "" || input.Password == "" {
		return nil, domainerrors.ErrRegistrationFieldsRequired.WrapMessage("registration input incomplete")
	}
	if utf8.RuneCountInString(input.Password) < srv.minPasswordLength {
		return nil, domainerrors.ErrPasswordTooShort.WrapMessage("password below minimum length")
	}
	if len(input.Password) > entity.PasswordMaxBytes {
		return nil, domainerrors.ErrPasswordTooLong.WrapMessage("password exceeds bcrypt input limit")
	}
	if utf8.RuneCountInString(email) > entity.EmailMaxLength {
		return nil, domainerrors.ErrEmailTooLong.WrapMessage("email exceeds column width")
	}
	if utf8.RuneCountInString(username) > entity.UsernameMaxLength {
		return nil, domainerrors.ErrUsernameTooLong.WrapMessage("username exceeds column width")
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	// Hash outside the transaction; bcrypt is CPU-bound.
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	newUser := &entity.User{
		Email:        email,
		Username:     username,
		PasswordHash: &hashedPassword,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		exists, err := userRepo.ExistsByEmailOrUsername(ctx, email, username)
		if err != nil {
			return errors.Wrap(err, "failed to check existing user")
		}
		if exists {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email or username taken")
		}

		return errors.Wrap(userRepo.Create(ctx, newUser), "failed to create user during registration")
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	token, err := srv.issueToken(newUser)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("userID", newUser.ID))

	return &usecase.AuthOutput{User: newUser, Token: token}, nil
}

// Login checks the password and issues a session token.
// Unknown email and wrong password produce the same error.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrLoginFieldsRequired.WrapMessage("login input incomplete")
	}

	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "unknown email"))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !user.HasPassword() {
		srv.log(ctx).Warn("Password login attempted on OAuth account", slog.Int64("userID", user.ID))

		return nil, domainerrors.ErrOAuthOnlyAccount.WrapMessage("login failed")
	}

	if !srv.hasher.Check(input.Password, *user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "password mismatch"))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.issueToken(user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Int64("userID", user.ID))

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

// Me returns the account behind a verified token.
func (srv *userService) Me(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("token subject no longer exists")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load current user")
	}

	return user, nil
}

func (srv *userService) issueToken(user *entity.User) (string, error) {
	token, err := srv.tokenService.Issue(user.ID, user.Email)
	if err != nil {
		return "", domainerrors.ErrInternalError.WrapMessage("failed to issue session token: " + err.Error())
	}

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
