package contract

import (
	"context"

	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/repository/specification"
)

type SummaryRepository interface {
	Create(ctx context.Context, summary *entity.Summary) error
	DeleteByUploadID(ctx context.Context, uploadID uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Summary, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Summary, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
