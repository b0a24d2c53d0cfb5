package impl

import (
	"context"
	"log/slog"
	"unicode/utf8"

	deliverycontext "keeper/internal/delivery/context"
	"keeper/internal/domain/entity"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/domain/repository"
	"keeper/internal/errors"
	"keeper/internal/usecase"

	"go.uber.org/fx"
)

// noteService implements the NoteUsecase interface.
type noteService struct {
	txManager repository.TransactionManager
	noteRepo  repository.NoteRepository
	logger    *slog.Logger
}

// NoteServiceParams holds dependencies for NoteService, injected by Fx.
type NoteServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	NoteRepo  repository.NoteRepository
	Logger    *slog.Logger
}

// NewNoteService is the constructor for noteService.
func NewNoteService(params NoteServiceParams) usecase.NoteUsecase {
	return &noteService{
		txManager: params.TxManager,
		noteRepo:  params.NoteRepo,
		logger:    params.Logger,
	}
}

func (srv *noteService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the caller's notes, newest first.
func (srv *noteService) List(ctx context.Context, userID int64) ([]*entity.Note, error) {
	notes, err := srv.noteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notes")
	}

	return notes, nil
}

// Create stores a new note for userID. A user deleted after the token was
// issued surfaces as ErrInvalidUser from the repository.
func (srv *noteService) Create(ctx context.Context, userID int64, input usecase.NoteInput) (*entity.Note, error) {
	if err := validateNoteInput(input); err != nil {
		return nil, err
	}

	note := &entity.Note{
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
	}
	if err := srv.noteRepo.Create(ctx, note); err != nil {
		srv.log(ctx).Warn("Failed to create note", slog.Int64("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create note")
	}

	srv.log(ctx).Debug("Note created", slog.Int64("noteID", note.ID), slog.Int64("userID", userID))

	return note, nil
}

// Update overwrites title and content of a note the caller owns.
func (srv *noteService) Update(ctx context.Context, noteID, userID int64, input usecase.NoteInput) (*entity.Note, error) {
	if err := validateNoteInput(input); err != nil {
		return nil, err
	}

	var updated *entity.Note
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		noteRepo := repoFactory.NewNoteRepository()

		note, err := srv.loadOwnedNote(ctx, noteRepo, noteID, userID)
		if err != nil {
			return err
		}

		note.Title = input.Title
		note.Content = input.Content
		if err := noteRepo.Update(ctx, note); err != nil {
			return mapNoteLookupError(err, "failed to update note")
		}
		updated = note

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute note update transaction")
	}

	return updated, nil
}

// Delete removes a note the caller owns.
func (srv *noteService) Delete(ctx context.Context, noteID, userID int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		noteRepo := repoFactory.NewNoteRepository()

		if _, err := srv.loadOwnedNote(ctx, noteRepo, noteID, userID); err != nil {
			return err
		}

		return mapNoteLookupError(noteRepo.Delete(ctx, noteID), "failed to delete note")
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute note delete transaction")
	}

	srv.log(ctx).Debug("Note deleted", slog.Int64("noteID", noteID), slog.Int64("userID", userID))

	return nil
}

func (srv *noteService) loadOwnedNote(ctx context.Context, noteRepo repository.NoteRepository, noteID, userID int64) (*entity.Note, error) {
	note, err := noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, mapNoteLookupError(err, "failed to find note")
	}

	if !note.IsOwnedBy(userID) {
		srv.log(ctx).Warn("Note ownership mismatch", slog.Int64("noteID", noteID), slog.Int64("userID", userID))

		return nil, domainerrors.ErrNoteForbidden.WrapMessage("note belongs to another user")
	}

	return note, nil
}

func mapNoteLookupError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNoteNotFound) {
		return domainerrors.ErrNoteNotFound.WrapMessage(msg)
	}

	return errors.Wrap(err, msg)
}

func validateNoteInput(input usecase.NoteInput) error {
	if input.Title == "" || input.Content == "" {
		return domainerrors.ErrNoteFieldsRequired.WrapMessage("note input incomplete")
	}
	if utf8.RuneCountInString(input.Title) > entity.NoteTitleMaxLength {
		return domainerrors.ErrNoteTitleTooLong.WrapMessage("note title too long")
	}

	return nil
}
