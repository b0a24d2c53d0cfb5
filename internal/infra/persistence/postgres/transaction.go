package postgres

import (
	"context"

	domainerrors "keeper/internal/domain/errors"
	"keeper/internal/domain/repository"
	"keeper/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory hands out repositories bound to a single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) NewUserRepository() repository.UserRepository {
	return NewUserRepository(f.tx)
}

func (f *gormRepositoryFactory) NewNoteRepository() repository.NoteRepository {
	return NewNoteRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs fn within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return transactionFailed(tx.Error, "failed to begin transaction")
	}

	// Roll back before re-panicking so the connection is released.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Join(err, errors.Wrap(rbErr, "transaction rollback failed"))
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return transactionFailed(err, "failed to commit transaction")
	}

	return nil
}

// transactionFailed keeps the driver cause while surfacing ErrTransactionFailed to callers.
func transactionFailed(err error, message string) error {
	return errors.Join(domainerrors.ErrTransactionFailed, errors.Wrap(err, message))
}
