package repository

import (
	"context"
	"errors"

	"keeper/internal/domain/entity"
)

// ErrNoteNotFound is returned when a note lookup matches no row.
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository persists notes. It performs no ownership checks; callers do.
type NoteRepository interface {
	// ListByUser returns the user's notes, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*entity.Note, error)

	// FindByID retrieves a single note by id.
	FindByID(ctx context.Context, id int64) (*entity.Note, error)

	// Create persists note and fills in its id.
	Create(ctx context.Context, note *entity.Note) error

	// Update overwrites title and content.
	Update(ctx context.Context, note *entity.Note) error

	// Delete removes the note by id.
	Delete(ctx context.Context, id int64) error
}
