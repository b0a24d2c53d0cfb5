// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"keeper/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to create a password account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput is returned by every successful sign-in path.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
	Me(ctx context.Context, userID int64) (*entity.User, error)
}
