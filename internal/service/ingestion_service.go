package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"
	"unicode/utf8"

	"pdf-summarizer-be/internal/dto"
	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/pkg/apperror"
	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/internal/repository/unitofwork"
	"pdf-summarizer-be/pkg/events"
	"pdf-summarizer-be/pkg/hasher"
	"pdf-summarizer-be/pkg/llm"
	"pdf-summarizer-be/pkg/pdf"
	"pdf-summarizer-be/pkg/storage"
)

type IIngestionService interface {
	Ingest(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResult, error)
}

// FileStore persists uploaded bytes and removes them again.
type FileStore interface {
	Save(fh *multipart.FileHeader, now time.Time) (*storage.StoredFile, error)
	Remove(path string) (int64, error)
}

type IngestionConfig struct {
	MaxFileSize   int64 // bytes
	MaxTextLength int   // runes sent to the model
	MaxTokens     int
}

type ingestionService struct {
	uowFactory  unitofwork.RepositoryFactory
	store       FileStore
	extractor   pdf.Extractor
	llmProvider llm.LLMProvider
	cache       ICacheLookup
	publisher   IEventPublisher
	logger      logger.ILogger
	apiLogger   logger.ILogger
	cfg         IngestionConfig
	hashFile    func(path string) (string, error)
	now         func() time.Time
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	store FileStore,
	extractor pdf.Extractor,
	llmProvider llm.LLMProvider,
	cache ICacheLookup,
	publisher IEventPublisher,
	log logger.ILogger,
	apiLogger logger.ILogger,
	cfg IngestionConfig,
) IIngestionService {
	return &ingestionService{
		uowFactory:  uowFactory,
		store:       store,
		extractor:   extractor,
		llmProvider: llmProvider,
		cache:       cache,
		publisher:   publisher,
		logger:      log,
		apiLogger:   apiLogger,
		cfg:         cfg,
		hashFile:    hasher.HashFile,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// batchError records which stage of which file broke the batch.
type batchError struct {
	stage    string
	filename string
	err      error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.stage, e.filename, e.err)
}

func (e *batchError) Unwrap() error {
	return e.err
}

func (s *ingestionService) Ingest(ctx context.Context, req *dto.IngestRequest) (*dto.IngestResult, error) {
	accepted, warnings, err := s.screen(req.Files)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal("Error processing files", fmt.Errorf("begin transaction: %w", err))
	}
	defer uow.Rollback()

	tmpl, err := resolvePromptTemplate(ctx, uow.PromptTemplateRepository(), req.PromptTemplateID)
	if err != nil {
		return nil, err
	}

	var savedPaths []string
	uploadIDs := make([]uint, 0, len(accepted))
	cachedCount := 0

	for _, fh := range accepted {
		id, cached, path, ferr := s.ingestFile(ctx, uow, req.SessionID, tmpl, fh)
		if path != "" {
			savedPaths = append(savedPaths, path)
		}
		if ferr != nil {
			return nil, s.abort(uow, req.SessionID, savedPaths, ferr)
		}
		uploadIDs = append(uploadIDs, id)
		if cached {
			cachedCount++
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, s.abort(uow, req.SessionID, savedPaths, &batchError{stage: "commit", err: err})
	}

	message := fmt.Sprintf("Successfully processed %d file(s)", len(uploadIDs))
	if cachedCount > 0 {
		message += fmt.Sprintf(" (%d from cache)", cachedCount)
	}

	s.logger.Info("INGEST", "Batch processing completed", map[string]interface{}{
		"session_id":  logger.Truncate(req.SessionID, 8),
		"files":       len(uploadIDs),
		"cached":      cachedCount,
		"duration_ms": time.Since(start).Milliseconds(),
		"template_id": tmpl.Id,
		"skipped":     len(warnings),
	})

	if err := s.publisher.Publish(ctx, events.NewBatchProcessed(req.SessionID, uploadIDs, cachedCount, s.now())); err != nil {
		s.logger.Warn("INGEST", "Failed to publish batch event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.IngestResult{
		UploadIds:   uploadIDs,
		CachedCount: cachedCount,
		Warnings:    warnings,
		Message:     message,
	}, nil
}

// screen drops non-PDF files with a warning and rejects the request before anything is
// written when a file is too large or nothing usable remains.
func (s *ingestionService) screen(files []*multipart.FileHeader) ([]*multipart.FileHeader, []string, error) {
	if len(files) == 0 || (len(files) == 1 && files[0].Filename == "") {
		return nil, nil, apperror.Validation("No files selected")
	}

	accepted := make([]*multipart.FileHeader, 0, len(files))
	warnings := make([]string, 0)
	for _, fh := range files {
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
			warnings = append(warnings, fmt.Sprintf("Skipped %s: Only PDF files are allowed", fh.Filename))
			continue
		}
		if s.cfg.MaxFileSize > 0 && fh.Size > s.cfg.MaxFileSize {
			return nil, nil, apperror.Validation(fmt.Sprintf("File %s exceeds the maximum size of %d MB", fh.Filename, s.cfg.MaxFileSize/(1024*1024)))
		}
		accepted = append(accepted, fh)
	}

	if len(accepted) == 0 {
		return nil, nil, apperror.Validation("No valid PDF files to process", warnings...)
	}
	return accepted, warnings, nil
}

// ingestFile returns the new upload id, whether it came from the cache and the stored path
// (set as soon as the file is on disk so a failing batch can clean it up).
func (s *ingestionService) ingestFile(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	sessionID string,
	tmpl *entity.PromptTemplate,
	fh *multipart.FileHeader,
) (uint, bool, string, *batchError) {
	stored, err := s.store.Save(fh, s.now())
	if err != nil {
		return 0, false, "", &batchError{stage: "save", filename: fh.Filename, err: err}
	}
	s.logger.Info("INGEST", "File uploaded", map[string]interface{}{
		"filename":   stored.OriginalFilename,
		"size":       stored.Size,
		"session_id": logger.Truncate(sessionID, 8),
	})

	digest, err := s.hashFile(stored.Path)
	if err != nil {
		return 0, false, stored.Path, &batchError{stage: "hash", filename: fh.Filename, err: err}
	}

	_, cachedSummary, err := s.cache.FindCached(ctx, uow, digest, &tmpl.Id)
	if err != nil {
		return 0, false, stored.Path, &batchError{stage: "cache_lookup", filename: fh.Filename, err: err}
	}

	upload := &entity.Upload{
		Filename:         stored.StoredFilename,
		OriginalFilename: stored.OriginalFilename,
		FilePath:         stored.Path,
		FileHash:         digest,
		SessionId:        sessionID,
		UploadDate:       s.now(),
		FileSize:         stored.Size,
		IsCached:         cachedSummary != nil,
	}
	if err := uow.UploadRepository().Create(ctx, upload); err != nil {
		return 0, false, stored.Path, &batchError{stage: "persist_upload", filename: fh.Filename, err: err}
	}

	templateID := tmpl.Id
	summary := &entity.Summary{
		UploadId:         upload.Id,
		PromptTemplateId: &templateID,
		CreatedDate:      s.now(),
	}

	if cachedSummary != nil {
		s.logger.Info("CACHE", "Cache hit", map[string]interface{}{"hash": logger.Truncate(digest, 16)})
		summary.SummaryText = cachedSummary.SummaryText
		summary.PageCount = cachedSummary.PageCount
		summary.CharCount = cachedSummary.CharCount
	} else {
		s.logger.Info("CACHE", "Cache miss", map[string]interface{}{"hash": logger.Truncate(digest, 16)})
		started := time.Now()

		text, pages, err := s.extractor.Extract(stored.Path)
		if err != nil {
			return 0, false, stored.Path, &batchError{stage: "extract", filename: fh.Filename, err: err}
		}

		summaryText, err := s.summarize(ctx, tmpl.PromptText, text)
		if err != nil {
			return 0, false, stored.Path, &batchError{stage: "summarize", filename: fh.Filename, err: err}
		}

		summary.SummaryText = summaryText
		summary.PageCount = pages
		summary.CharCount = utf8.RuneCountInString(text)

		s.logger.Info("INGEST", "PDF processed", map[string]interface{}{
			"filename":    stored.OriginalFilename,
			"pages":       pages,
			"chars":       summary.CharCount,
			"duration_ms": time.Since(started).Milliseconds(),
		})
	}

	if err := uow.SummaryRepository().Create(ctx, summary); err != nil {
		return 0, false, stored.Path, &batchError{stage: "persist_summary", filename: fh.Filename, err: err}
	}

	return upload.Id, cachedSummary != nil, stored.Path, nil
}

func (s *ingestionService) summarize(ctx context.Context, promptText, text string) (string, error) {
	prompt := promptText + "\n\n" + truncateRunes(text, s.cfg.MaxTextLength)

	start := time.Now()
	out, err := s.llmProvider.Generate(ctx, prompt, llm.WithMaxTokens(s.cfg.MaxTokens))
	details := map[string]interface{}{
		"operation":   "Summarization",
		"duration_ms": time.Since(start).Milliseconds(),
		"status":      "success",
	}
	if err != nil {
		details["status"] = "failed"
		details["error"] = err.Error()
		s.apiLogger.Error("API", "LLM call failed", details)
		return "", err
	}
	s.apiLogger.Info("API", "LLM call completed", details)
	return out, nil
}

func (s *ingestionService) abort(uow unitofwork.UnitOfWork, sessionID string, savedPaths []string, err *batchError) error {
	_ = uow.Rollback()

	for _, path := range savedPaths {
		if _, rmErr := s.store.Remove(path); rmErr != nil {
			s.logger.Warn("INGEST", "Failed to remove file from rolled back batch", map[string]interface{}{
				"path":  path,
				"error": rmErr.Error(),
			})
		}
	}

	s.logger.Error("INGEST", "Upload processing failed", map[string]interface{}{
		"session_id": logger.Truncate(sessionID, 8),
		"stage":      err.stage,
		"filename":   err.filename,
		"error":      err.err.Error(),
	})
	return apperror.Processing("Error processing files", err)
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
