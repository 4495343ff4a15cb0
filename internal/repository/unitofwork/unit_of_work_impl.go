package unitofwork

import (
	"context"
	"fmt"

	"pdf-summarizer-be/internal/repository/contract"
	"pdf-summarizer-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

// Rollback is safe to defer; after a Commit it reports there is nothing to roll back.
func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) InTransaction() bool {
	return u.tx != nil
}

// Repository Accessors

func (u *UnitOfWorkImpl) UploadRepository() contract.UploadRepository {
	return implementation.NewUploadRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SummaryRepository() contract.SummaryRepository {
	return implementation.NewSummaryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PromptTemplateRepository() contract.PromptTemplateRepository {
	return implementation.NewPromptTemplateRepository(u.getDB())
}
