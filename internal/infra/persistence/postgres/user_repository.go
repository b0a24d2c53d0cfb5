// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"keeper/internal/domain/entity"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/domain/repository"
	"keeper/internal/errors"
	"keeper/internal/infra/persistence/model"
	"keeper/internal/infra/persistence/postgres/query"

	"gorm.io/gen/field"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	q *query.Query
}

// NewUserRepository is the constructor for userRepository.
// It builds the GORM Gen query set over db, which may be a transaction.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{
		q: query.Use(db),
	}
}

// FindByID retrieves a single user by id.
func (repo *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	u := repo.q.UserModel
	userM, err := u.WithContext(ctx).Where(u.ID.Eq(id)).Take()
	if err != nil {
		return nil, repo.lookupError(err, "failed to find user by id")
	}

	return toUserDomain(userM), nil
}

// FindByEmail retrieves a single user by email.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := repo.q.UserModel
	userM, err := u.WithContext(ctx).Where(u.Email.Eq(email)).Take()
	if err != nil {
		return nil, repo.lookupError(err, "failed to find user by email")
	}

	return toUserDomain(userM), nil
}

// FindByProviderID retrieves the user linked to a provider account.
func (repo *userRepository) FindByProviderID(ctx context.Context, provider entity.ProviderType, providerID string) (*entity.User, error) {
	column, err := repo.providerColumn(provider)
	if err != nil {
		return nil, err
	}

	userM, err := repo.q.UserModel.WithContext(ctx).Where(column.Eq(providerID)).Take()
	if err != nil {
		return nil, repo.lookupError(err, "failed to find user by provider id")
	}

	return toUserDomain(userM), nil
}

// ExistsByEmailOrUsername reports whether either value is already taken.
func (repo *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	u := repo.q.UserModel
	count, err := u.WithContext(ctx).
		Where(u.Email.Eq(email)).
		Or(u.Username.Eq(username)).
		Count()
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check user existence")
	}

	return count > 0, nil
}

// ExistsByUsername reports whether the username is already taken.
func (repo *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u := repo.q.UserModel
	count, err := u.WithContext(ctx).Where(u.Username.Eq(username)).Count()
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check username")
	}

	return count > 0, nil
}

// Create persists a new user and copies the generated id and timestamps back.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.q.UserModel.WithContext(ctx).Create(userM); err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("unique constraint " + constraintName(err))
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("user row rejected by schema")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// LinkProvider sets the provider column only while it is still NULL, so an
// existing link is never overwritten even under concurrent callbacks.
func (repo *userRepository) LinkProvider(ctx context.Context, userID int64, provider entity.ProviderType, providerID string) (bool, error) {
	column, err := repo.providerColumn(provider)
	if err != nil {
		return false, err
	}

	u := repo.q.UserModel
	info, err := u.WithContext(ctx).
		Where(u.ID.Eq(userID), column.IsNull()).
		UpdateSimple(column.Value(providerID), u.UpdatedAt.Value(time.Now()))
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return false, domainerrors.ErrUserAlreadyExists.WrapMessage(provider.String() + " account already linked to another user")
		}

		return false, domainerrors.NewDatabaseExecuteError(err, "failed to link provider")
	}

	return info.RowsAffected > 0, nil
}

// providerColumn maps a provider to its users column.
func (repo *userRepository) providerColumn(provider entity.ProviderType) (field.String, error) {
	switch provider {
	case entity.ProviderGoogle:
		return repo.q.UserModel.GoogleID, nil
	case entity.ProviderGitHub:
		return repo.q.UserModel.GitHubID, nil
	default:
		return field.String{}, errors.Errorf("unknown provider %q", provider)
	}
}

func (repo *userRepository) lookupError(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrUserNotFound
	}

	return domainerrors.NewDatabaseExecuteError(err, msg)
}

func toUserDomain(userM *model.UserModel) *entity.User {
	return &entity.User{
		ID:           userM.ID,
		Email:        userM.Email,
		Username:     userM.Username,
		PasswordHash: userM.PasswordHash,
		GoogleID:     userM.GoogleID,
		GitHubID:     userM.GitHubID,
		CreatedAt:    userM.CreatedAt,
		UpdatedAt:    userM.UpdatedAt,
	}
}

func fromUserDomain(user *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		GoogleID:     user.GoogleID,
		GitHubID:     user.GitHubID,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
