package postgres

import (
	"context"

	"keeper/internal/domain/entity"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/domain/repository"
	"keeper/internal/errors"
	"keeper/internal/infra/persistence/model"
	"keeper/internal/infra/persistence/postgres/query"

	"gorm.io/gorm"
)

// noteRepository implements the repository.NoteRepository interface using GORM.
type noteRepository struct {
	q *query.Query
}

// NewNoteRepository is the constructor for noteRepository.
func NewNoteRepository(db *gorm.DB) repository.NoteRepository {
	return &noteRepository{
		q: query.Use(db),
	}
}

// ListByUser returns the owner's notes, newest first.
func (repo *noteRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Note, error) {
	n := repo.q.NoteModel
	noteMs, err := n.WithContext(ctx).
		Where(n.UserID.Eq(userID)).
		Order(n.ID.Desc()).
		Find()
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list notes")
	}

	notes := make([]*entity.Note, 0, len(noteMs))
	for _, noteM := range noteMs {
		notes = append(notes, toNoteDomain(noteM))
	}

	return notes, nil
}

func (repo *noteRepository) FindByID(ctx context.Context, id int64) (*entity.Note, error) {
	n := repo.q.NoteModel
	noteM, err := n.WithContext(ctx).Where(n.ID.Eq(id)).Take()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNoteNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find note")
	}

	return toNoteDomain(noteM), nil
}

// Create inserts the note. A missing owner row surfaces as ErrInvalidUser.
func (repo *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	noteM := fromNoteDomain(note)

	if err := repo.q.NoteModel.WithContext(ctx).Create(noteM); err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrInvalidUser.WrapMessage("note owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrNoteFieldsRequired.WrapMessage("note row rejected by schema")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create note")
	}

	note.ID = noteM.ID

	return nil
}

func (repo *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	n := repo.q.NoteModel
	info, err := n.WithContext(ctx).
		Where(n.ID.Eq(note.ID)).
		UpdateSimple(n.Title.Value(note.Title), n.Content.Value(note.Content))
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update note")
	}
	if info.RowsAffected == 0 {
		return repository.ErrNoteNotFound
	}

	return nil
}

func (repo *noteRepository) Delete(ctx context.Context, id int64) error {
	n := repo.q.NoteModel
	info, err := n.WithContext(ctx).Where(n.ID.Eq(id)).Delete()
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete note")
	}
	if info.RowsAffected == 0 {
		return repository.ErrNoteNotFound
	}

	return nil
}

func toNoteDomain(noteM *model.NoteModel) *entity.Note {
	return &entity.Note{
		ID:      noteM.ID,
		UserID:  noteM.UserID,
		Title:   noteM.Title,
		Content: noteM.Content,
	}
}

func fromNoteDomain(note *entity.Note) *model.NoteModel {
	return &model.NoteModel{
		ID:      note.ID,
		UserID:  note.UserID,
		Title:   note.Title,
		Content: note.Content,
	}
}
