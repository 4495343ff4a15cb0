package service

import (
	"context"
	"fmt"

	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/repository/specification"
	"pdf-summarizer-be/internal/repository/unitofwork"
)

type ICacheLookup interface {
	FindCached(ctx context.Context, uow unitofwork.UnitOfWork, digest string, templateID *uint) (*entity.Upload, *entity.Summary, error)
}

type cacheLookup struct{}

func NewCacheLookup() ICacheLookup {
	return &cacheLookup{}
}

// FindCached returns an earlier upload with the same digest together with its summary for
// the template, or (nil, nil, nil). When several uploads qualify the earliest summary wins.
// It runs inside the caller's unit of work and never writes.
func (c *cacheLookup) FindCached(ctx context.Context, uow unitofwork.UnitOfWork, digest string, templateID *uint) (*entity.Upload, *entity.Summary, error) {
	summary, err := uow.SummaryRepository().FindOne(ctx, specification.CachedSummaryFor{
		FileHash:         digest,
		PromptTemplateID: templateID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("find cached summary: %w", err)
	}
	if summary == nil {
		return nil, nil, nil
	}

	upload, err := uow.UploadRepository().FindOne(ctx, specification.ByID{ID: summary.UploadId})
	if err != nil {
		return nil, nil, fmt.Errorf("find cached upload: %w", err)
	}
	if upload == nil {
		return nil, nil, nil
	}
	return upload, summary, nil
}
