// Package response shapes the JSON bodies of the API.
package response

import (
	"net/http"

	"keeper/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message"`        // User-friendly error message
	Code    string `json:"code,omitempty"` // Machine-readable error code, e.g. "VALIDATION_FAILED"
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// User is the public view of an account. Hashes and provider ids stay private.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Note is the public view of a note.
type Note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// UserResponse is returned by /auth/me.
type UserResponse struct {
	User User `json:"user"`
}

// NotesResponse is returned by the note listing.
type NotesResponse struct {
	Notes []Note `json:"notes"`
}

// NoteResponse is returned by note creation and update.
type NoteResponse struct {
	Message string `json:"message"`
	Note    Note   `json:"note"`
}

// FromUser maps an account to its public view.
func FromUser(user *entity.User) User {
	return User{ID: user.ID, Email: user.Email, Username: user.Username}
}

// FromNote maps a note to its public view.
func FromNote(note *entity.Note) Note {
	return Note{ID: note.ID, Title: note.Title, Content: note.Content}
}

// FromNotes maps a list of notes, never returning nil.
func FromNotes(notes []*entity.Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, note := range notes {
		out = append(out, FromNote(note))
	}

	return out
}

// Success writes body with statusCode.
func Success(c echo.Context, statusCode int, body any) error {
	return c.JSON(statusCode, body)
}

// Message writes a MessageResponse with statusCode.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageResponse{Message: message})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode, message string) error {
	return c.JSON(statusCode, ErrorResponse{
		Message: message,
		Code:    errorCode,
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
