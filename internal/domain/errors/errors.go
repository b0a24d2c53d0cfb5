package errors

import (
	"net/http"

	"keeper/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid request payload",
		"",
	)

	ErrRegistrationFieldsRequired = NewBaseError(
		http.StatusBadRequest,
		"REGISTRATION_FIELDS_REQUIRED",
		"Email, username, and password are required",
		"",
	)

	ErrLoginFieldsRequired = NewBaseError(
		http.StatusBadRequest,
		"LOGIN_FIELDS_REQUIRED",
		"Email and password are required",
		"",
	)

	ErrPasswordTooShort = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_TOO_SHORT",
		"Password must be at least 6 characters",
		"",
	)

	ErrPasswordTooLong = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_TOO_LONG",
		"Password must be at most 72 bytes",
		"",
	)

	ErrEmailTooLong = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_TOO_LONG",
		"Email must be at most 255 characters",
		"",
	)

	ErrUsernameTooLong = NewBaseError(
		http.StatusBadRequest,
		"USERNAME_TOO_LONG",
		"Username must be at most 255 characters",
		"",
	)

	ErrNoteFieldsRequired = NewBaseError(
		http.StatusBadRequest,
		"NOTE_FIELDS_REQUIRED",
		"Title and content are required",
		"",
	)

	ErrNoteTitleTooLong = NewBaseError(
		http.StatusBadRequest,
		"NOTE_TITLE_TOO_LONG",
		"Title must be at most 255 characters",
		"",
	)

	ErrInvalidNoteID = NewBaseError(
		http.StatusBadRequest,
		"INVALID_NOTE_ID",
		"Invalid note id",
		"",
	)

	// User errors
	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"User already exists",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	ErrInvalidUser = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_USER",
		"Invalid user. Please login again.",
		"",
	)

	// Authentication errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	ErrOAuthOnlyAccount = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_ONLY_ACCOUNT",
		"This account uses OAuth login. Please use the OAuth provider.",
		"",
	)

	ErrTokenRequired = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_REQUIRED",
		"Access token required",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusForbidden,
		"TOKEN_INVALID",
		"Invalid or expired token",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		"",
	)

	// OAuth errors
	ErrOAuthProviderNotFound = NewBaseError(
		http.StatusNotFound,
		"OAUTH_PROVIDER_NOT_FOUND",
		"Unknown OAuth provider",
		"",
	)

	ErrOAuthStateInvalid = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_STATE_INVALID",
		"Invalid or expired OAuth state",
		"",
	)

	ErrOAuthFailed = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_FAILED",
		"OAuth authentication failed",
		"",
	)

	ErrOAuthMissingEmail = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_MISSING_EMAIL",
		"No email found in OAuth profile",
		"",
	)

	// Note errors
	ErrNoteNotFound = NewBaseError(
		http.StatusNotFound,
		"NOTE_NOT_FOUND",
		"Note not found",
		"",
	)

	ErrNoteForbidden = NewBaseError(
		http.StatusForbidden,
		"NOTE_FORBIDDEN",
		"Unauthorized",
		"",
	)

	// Transaction errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Internal server error",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Route not found",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Internal server error"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// Unwrap exposes the driver error for errors.Is and errors.As
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
