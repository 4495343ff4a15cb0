package contract

import (
	"context"

	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/repository/specification"
)

type PromptTemplateRepository interface {
	Create(ctx context.Context, tmpl *entity.PromptTemplate) error
	Update(ctx context.Context, tmpl *entity.PromptTemplate) error
	Delete(ctx context.Context, id uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PromptTemplate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromptTemplate, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
