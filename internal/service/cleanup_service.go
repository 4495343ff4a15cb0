package service

import (
	"context"
	"fmt"
	"time"

	"pdf-summarizer-be/internal/dto"
	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/internal/repository/specification"
	"pdf-summarizer-be/internal/repository/unitofwork"
	"pdf-summarizer-be/pkg/events"
)

type ICleanupService interface {
	RunCleanup(ctx context.Context, now time.Time, retentionDays int) (*dto.CleanupResult, error)
}

// FileRemover deletes a stored file, returning the bytes freed. Missing files free nothing.
type FileRemover interface {
	Remove(path string) (int64, error)
}

type cleanupService struct {
	uowFactory unitofwork.RepositoryFactory
	files      FileRemover
	publisher  IEventPublisher
	logger     logger.ILogger
}

func NewCleanupService(
	uowFactory unitofwork.RepositoryFactory,
	files FileRemover,
	publisher IEventPublisher,
	log logger.ILogger,
) ICleanupService {
	return &cleanupService{
		uowFactory: uowFactory,
		files:      files,
		publisher:  publisher,
		logger:     log,
	}
}

// RunCleanup deletes every upload older than retentionDays together with its file and
// summaries. The whole run is one transaction.
func (s *cleanupService) RunCleanup(ctx context.Context, now time.Time, retentionDays int) (*dto.CleanupResult, error) {
	cutoff := now.UTC().Add(-time.Duration(retentionDays) * 24 * time.Hour)

	s.logger.Info("CLEANUP", "Starting cleanup", map[string]interface{}{
		"retention_days": retentionDays,
		"cutoff":         cutoff.Format(time.RFC3339),
	})

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, s.fail(fmt.Errorf("begin transaction: %w", err))
	}
	defer uow.Rollback()

	uploads, err := uow.UploadRepository().FindAll(ctx,
		specification.UploadedBefore{Cutoff: cutoff},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, s.fail(fmt.Errorf("find old uploads: %w", err))
	}

	result := &dto.CleanupResult{}
	for _, upload := range uploads {
		freed, err := s.files.Remove(upload.FilePath)
		if err != nil {
			return nil, s.fail(fmt.Errorf("remove file %s: %w", upload.FilePath, err))
		}
		if freed > 0 {
			s.logger.Debug("CLEANUP", "Deleted file", map[string]interface{}{"path": upload.FilePath, "bytes": freed})
		}
		result.FreedBytes += freed

		if err := uow.UploadRepository().Delete(ctx, upload.Id); err != nil {
			return nil, s.fail(fmt.Errorf("delete upload %d: %w", upload.Id, err))
		}
		result.DeletedCount++
	}

	if err := uow.Commit(); err != nil {
		return nil, s.fail(fmt.Errorf("commit cleanup: %w", err))
	}

	s.logger.Info("CLEANUP", "Cleanup completed", map[string]interface{}{
		"deleted_uploads": result.DeletedCount,
		"freed_mb":        fmt.Sprintf("%.2f", float64(result.FreedBytes)/(1024*1024)),
	})

	if err := s.publisher.Publish(ctx, events.NewCleanupCompleted(result.DeletedCount, result.FreedBytes, retentionDays, now.UTC())); err != nil {
		s.logger.Warn("CLEANUP", "Failed to publish cleanup event", map[string]interface{}{"error": err.Error()})
	}

	return result, nil
}

func (s *cleanupService) fail(err error) error {
	s.logger.Error("CLEANUP", "Cleanup failed", map[string]interface{}{"error": err.Error()})
	return err
}
