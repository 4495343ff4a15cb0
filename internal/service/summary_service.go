package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pdf-summarizer-be/internal/dto"
	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/pkg/apperror"
	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/internal/repository/specification"
	"pdf-summarizer-be/internal/repository/unitofwork"
)

const downloadTimeLayout = "2006-01-02 15:04:05"

type ISummaryService interface {
	Results(ctx context.Context, ids []uint) ([]*dto.UploadResponse, error)
	Download(ctx context.Context, summaryID uint) (*dto.DownloadResponse, error)
	MyUploads(ctx context.Context, sessionID string) ([]*dto.UploadResponse, error)
	AllSummaries(ctx context.Context) ([]*dto.UploadResponse, error)
	RecentUploads(ctx context.Context, sessionID string, limit int) ([]*dto.UploadResponse, error)
}

type summaryService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewSummaryService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ISummaryService {
	return &summaryService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *summaryService) Results(ctx context.Context, ids []uint) ([]*dto.UploadResponse, error) {
	if len(ids) == 0 {
		return nil, apperror.Validation("No results to display")
	}

	uploads, err := s.findUploads(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RESULTS", "Displaying results", map[string]interface{}{"uploads": len(uploads)})
	return uploads, nil
}

func (s *summaryService) Download(ctx context.Context, summaryID uint) (*dto.DownloadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summary, err := uow.SummaryRepository().FindOne(ctx, specification.ByID{ID: summaryID})
	if err != nil {
		return nil, fmt.Errorf("find summary: %w", err)
	}
	if summary == nil {
		return nil, apperror.NotFound("Summary not found")
	}

	upload, err := uow.UploadRepository().FindOne(ctx, specification.ByID{ID: summary.UploadId})
	if err != nil {
		return nil, fmt.Errorf("find upload: %w", err)
	}
	if upload == nil {
		return nil, apperror.NotFound("Summary not found")
	}

	res := &dto.DownloadResponse{
		Filename: DownloadFilename(upload.OriginalFilename),
		Content:  FormatDownload(upload, summary),
	}
	s.logger.Info("RESULTS", "Summary downloaded", map[string]interface{}{"filename": res.Filename})
	return res, nil
}

func (s *summaryService) MyUploads(ctx context.Context, sessionID string) ([]*dto.UploadResponse, error) {
	uploads, err := s.findUploads(ctx, specification.BySessionID{SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	s.logger.Info("RESULTS", "My uploads accessed", map[string]interface{}{
		"session_id": logger.Truncate(sessionID, 8),
		"uploads":    len(uploads),
	})
	return uploads, nil
}

func (s *summaryService) AllSummaries(ctx context.Context) ([]*dto.UploadResponse, error) {
	uploads, err := s.findUploads(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("RESULTS", "All summaries accessed", map[string]interface{}{"uploads": len(uploads)})
	return uploads, nil
}

func (s *summaryService) RecentUploads(ctx context.Context, sessionID string, limit int) ([]*dto.UploadResponse, error) {
	return s.findUploads(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.Pagination{Limit: limit},
	)
}

func (s *summaryService) findUploads(ctx context.Context, specs ...specification.Specification) ([]*dto.UploadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs = append(specs, specification.NewestFirst{}, specification.WithSummaries{})
	uploads, err := uow.UploadRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("find uploads: %w", err)
	}

	res := make([]*dto.UploadResponse, 0, len(uploads))
	for _, u := range uploads {
		res = append(res, toUploadResponse(u))
	}
	return res, nil
}

// ParseIDList parses "1,2,3". Blank entries are ignored; anything else that is not a
// positive integer is a validation error.
func ParseIDList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apperror.Validation("No results to display")
	}

	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			return nil, apperror.Validation(fmt.Sprintf("Invalid upload id: %s", part))
		}
		ids = append(ids, uint(id))
	}
	if len(ids) == 0 {
		return nil, apperror.Validation("No results to display")
	}
	return ids, nil
}

// FormatDownload renders the plain text body of a summary download.
func FormatDownload(upload *entity.Upload, summary *entity.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summary of: %s\n", upload.OriginalFilename)
	fmt.Fprintf(&b, "Generated: %s\n", summary.CreatedDate.Format(downloadTimeLayout))
	fmt.Fprintf(&b, "Pages: %d\n", summary.PageCount)
	fmt.Fprintf(&b, "Original document characters: %s\n", formatThousands(summary.CharCount))
	if upload.IsCached {
		b.WriteString("Source: Cached summary\n")
	}
	b.WriteString("\n" + strings.Repeat("=", 80) + "\n\n")
	b.WriteString(summary.SummaryText)
	return b.String()
}

// DownloadFilename is summary_{name without its last extension}.txt.
func DownloadFilename(originalFilename string) string {
	stem := originalFilename
	if i := strings.LastIndex(stem, "."); i >= 0 {
		stem = stem[:i]
	}
	return "summary_" + stem + ".txt"
}

func formatThousands(n int) string {
	digits := strconv.Itoa(n)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}

func toUploadResponse(u *entity.Upload) *dto.UploadResponse {
	summaries := make([]*dto.SummaryResponse, 0, len(u.Summaries))
	for _, s := range u.Summaries {
		summaries = append(summaries, &dto.SummaryResponse{
			Id:               s.Id,
			PromptTemplateId: s.PromptTemplateId,
			SummaryText:      s.SummaryText,
			CreatedDate:      s.CreatedDate,
			PageCount:        s.PageCount,
			CharCount:        s.CharCount,
		})
	}

	return &dto.UploadResponse{
		Id:               u.Id,
		Filename:         u.Filename,
		OriginalFilename: u.OriginalFilename,
		FileHash:         u.FileHash,
		UploadDate:       u.UploadDate,
		FileSize:         u.FileSize,
		IsCached:         u.IsCached,
		Summaries:        summaries,
	}
}
