package api

import (
	"context"
	"slices"
	"sync"
	"time"

	"keeper/internal/domain/entity"
	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/domain/repository"
)

// memStore is an in-memory stand-in for PostgreSQL honouring the same
// uniqueness and foreign key rules as the schema.
type memStore struct {
	mu         sync.Mutex
	users      map[int64]*entity.User
	notes      map[int64]*entity.Note
	nextUserID int64
	nextNoteID int64
}

func newMemStore() *memStore {
	return &memStore{
		users: map[int64]*entity.User{},
		notes: map[int64]*entity.Note{},
	}
}

func (s *memStore) NewUserRepository() repository.UserRepository { return memUsers{s} }
func (s *memStore) NewNoteRepository() repository.NoteRepository { return memNotes{s} }

func (s *memStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

type memUsers struct{ s *memStore }

func (r memUsers) find(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if match(u) {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r memUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r memUsers) FindByProviderID(_ context.Context, provider entity.ProviderType, providerID string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ProviderID(provider) == providerID })
}

func (r memUsers) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	_, err := r.find(func(u *entity.User) bool { return u.Email == email || u.Username == username })

	return err == nil, nil
}

func (r memUsers) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, err := r.find(func(u *entity.User) bool { return u.Username == username })

	return err == nil, nil
}

func (r memUsers) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("unique constraint")
		}
	}

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.s.users[user.ID] = &clone

	return nil
}

func (r memUsers) LinkProvider(_ context.Context, userID int64, provider entity.ProviderType, providerID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return false, nil
	}

	return u.LinkProvider(provider, providerID), nil
}

type memNotes struct{ s *memStore }

func (r memNotes) ListByUser(_ context.Context, userID int64) ([]*entity.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var notes []*entity.Note
	for _, n := range r.s.notes {
		if n.UserID == userID {
			clone := *n
			notes = append(notes, &clone)
		}
	}
	slices.SortFunc(notes, func(a, b *entity.Note) int { return int(b.ID - a.ID) })

	return notes, nil
}

func (r memNotes) FindByID(_ context.Context, id int64) (*entity.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notes[id]
	if !ok {
		return nil, repository.ErrNoteNotFound
	}
	clone := *n

	return &clone, nil
}

func (r memNotes) Create(_ context.Context, note *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[note.UserID]; !ok {
		return domainerrors.ErrInvalidUser.WrapMessage("note owner does not exist")
	}

	r.s.nextNoteID++
	note.ID = r.s.nextNoteID
	clone := *note
	r.s.notes[note.ID] = &clone

	return nil
}

func (r memNotes) Update(_ context.Context, note *entity.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notes[note.ID]
	if !ok {
		return repository.ErrNoteNotFound
	}
	n.Title = note.Title
	n.Content = note.Content

	return nil
}

func (r memNotes) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.notes[id]; !ok {
		return repository.ErrNoteNotFound
	}
	delete(r.s.notes, id)

	return nil
}
