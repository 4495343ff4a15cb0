package contract

import (
	"context"

	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/repository/specification"
)

type UploadRepository interface {
	Create(ctx context.Context, upload *entity.Upload) error
	Delete(ctx context.Context, id uint) error // Removes summaries first, then the upload
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Upload, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Upload, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
