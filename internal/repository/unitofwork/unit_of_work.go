package unitofwork

import (
	"context"

	"pdf-summarizer-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error
	InTransaction() bool

	UploadRepository() contract.UploadRepository
	SummaryRepository() contract.SummaryRepository
	PromptTemplateRepository() contract.PromptTemplateRepository
}
