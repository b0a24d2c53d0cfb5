package usecase

import (
	"context"

	"keeper/internal/domain/entity"
)

// NoteInput is the editable part of a note.
type NoteInput struct {
	Title   string
	Content string
}

// NoteUsecase is ownership-checked CRUD over a user's notes.
type NoteUsecase interface {
	List(ctx context.Context, userID int64) ([]*entity.Note, error)
	Create(ctx context.Context, userID int64, input NoteInput) (*entity.Note, error)
	Update(ctx context.Context, noteID, userID int64, input NoteInput) (*entity.Note, error)
	Delete(ctx context.Context, noteID, userID int64) error
}
