// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"keeper/internal/domain/entity"
)

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by id.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByProviderID retrieves the user linked to a provider account.
	FindByProviderID(ctx context.Context, provider entity.ProviderType, providerID string) (*entity.User, error)

	// ExistsByEmailOrUsername reports whether either value is already taken.
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)

	// ExistsByUsername reports whether the username is already taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Create persists user and fills in its id and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// LinkProvider sets the provider id column only while it is still NULL.
	// It reports whether a row was changed.
	LinkProvider(ctx context.Context, userID int64, provider entity.ProviderType, providerID string) (bool, error)
}
