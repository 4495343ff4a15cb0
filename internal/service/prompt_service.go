package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"pdf-summarizer-be/internal/dto"
	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/pkg/apperror"
	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/internal/repository/contract"
	"pdf-summarizer-be/internal/repository/memory"
	"pdf-summarizer-be/internal/repository/specification"
	"pdf-summarizer-be/internal/repository/unitofwork"
)

type IPromptService interface {
	List(ctx context.Context) ([]*dto.PromptTemplateResponse, error)
	ListActive(ctx context.Context) ([]*dto.PromptTemplateResponse, error)
	Get(ctx context.Context, id uint) (*dto.PromptTemplateResponse, error)
	NewForm() *dto.PromptTemplateFormResponse
	Create(ctx context.Context, req *dto.CreatePromptTemplateRequest) (*dto.PromptTemplateResponse, error)
	Update(ctx context.Context, req *dto.UpdatePromptTemplateRequest) (*dto.PromptTemplateResponse, error)
	Delete(ctx context.Context, id uint) error
	ResolveDefault(ctx context.Context) (*dto.PromptTemplateResponse, error)
	SeedDefault(ctx context.Context) (bool, error)
}

type promptService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.PromptTemplateCache
	logger     logger.ILogger
	now        func() time.Time
}

func NewPromptService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.PromptTemplateCache,
	log logger.ILogger,
) IPromptService {
	return &promptService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *promptService) List(ctx context.Context) ([]*dto.PromptTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	templates, err := uow.PromptTemplateRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_date", Desc: true},
		specification.OrderBy{Field: "id", Desc: true},
	)
	if err != nil {
		return nil, fmt.Errorf("list prompt templates: %w", err)
	}

	s.logger.Info("PROMPTS", "Prompts list accessed", map[string]interface{}{"count": len(templates)})
	return toPromptResponses(templates), nil
}

func (s *promptService) ListActive(ctx context.Context) ([]*dto.PromptTemplateResponse, error) {
	if cached, ok := s.cache.GetActive(); ok {
		return toPromptResponses(cached), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	templates, err := uow.PromptTemplateRepository().FindAll(ctx,
		specification.ActiveOnly{},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return nil, fmt.Errorf("list active prompt templates: %w", err)
	}

	s.cache.SaveActive(templates)
	return toPromptResponses(templates), nil
}

func (s *promptService) Get(ctx context.Context, id uint) (*dto.PromptTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tmpl, err := uow.PromptTemplateRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, fmt.Errorf("find prompt template: %w", err)
	}
	if tmpl == nil {
		return nil, apperror.NotFound("Prompt template not found")
	}
	return toPromptResponse(tmpl), nil
}

func (s *promptService) NewForm() *dto.PromptTemplateFormResponse {
	return &dto.PromptTemplateFormResponse{
		IsActive:      true,
		MaxNameLength: entity.MaxPromptNameLength,
		MaxTextLength: entity.MaxPromptTextLength,
	}
}

func (s *promptService) Create(ctx context.Context, req *dto.CreatePromptTemplateRequest) (*dto.PromptTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PromptTemplateRepository()

	if err := s.ensureUniqueName(ctx, repo, req.Name, 0); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.now()
	tmpl := &entity.PromptTemplate{
		Name:         req.Name,
		PromptText:   req.PromptText,
		IsActive:     isActive,
		CreatedDate:  now,
		ModifiedDate: now,
	}
	if err := validateTemplate(tmpl); err != nil {
		return nil, err
	}

	if err := repo.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("create prompt template: %w", err)
	}
	s.cache.Invalidate()

	s.logger.Info("PROMPTS", "New prompt template created", map[string]interface{}{"name": tmpl.Name, "id": tmpl.Id})
	return toPromptResponse(tmpl), nil
}

func (s *promptService) Update(ctx context.Context, req *dto.UpdatePromptTemplateRequest) (*dto.PromptTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PromptTemplateRepository()

	tmpl, err := repo.FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, fmt.Errorf("find prompt template: %w", err)
	}
	if tmpl == nil {
		return nil, apperror.NotFound("Prompt template not found")
	}

	if err := s.ensureUniqueName(ctx, repo, req.Name, req.Id); err != nil {
		return nil, err
	}

	tmpl.Name = req.Name
	tmpl.PromptText = req.PromptText
	if req.IsActive != nil {
		tmpl.IsActive = *req.IsActive
	}
	tmpl.ModifiedDate = s.now()

	if err := validateTemplate(tmpl); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("update prompt template: %w", err)
	}
	s.cache.Invalidate()

	s.logger.Info("PROMPTS", "Prompt template updated", map[string]interface{}{"name": tmpl.Name, "id": tmpl.Id})
	return toPromptResponse(tmpl), nil
}

func (s *promptService) Delete(ctx context.Context, id uint) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer uow.Rollback()

	tmpl, err := uow.PromptTemplateRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return fmt.Errorf("find prompt template: %w", err)
	}
	if tmpl == nil {
		return apperror.NotFound("Prompt template not found")
	}

	inUse, err := uow.SummaryRepository().Count(ctx, specification.ByPromptTemplateID{ID: &id})
	if err != nil {
		return fmt.Errorf("count summaries for prompt template: %w", err)
	}
	if inUse > 0 {
		return apperror.Conflict(fmt.Sprintf("Cannot delete prompt '%s': it is used by %d summaries", tmpl.Name, inUse))
	}

	if err := uow.PromptTemplateRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("delete prompt template: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit prompt template delete: %w", err)
	}
	s.cache.Invalidate()

	s.logger.Info("PROMPTS", "Prompt template deleted", map[string]interface{}{"name": tmpl.Name, "id": id})
	return nil
}

// ResolveDefault returns the template preselected on the upload form, or nil when no
// template is active.
func (s *promptService) ResolveDefault(ctx context.Context) (*dto.PromptTemplateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	tmpl, err := findDefaultTemplate(ctx, uow.PromptTemplateRepository())
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, nil
	}
	return toPromptResponse(tmpl), nil
}

// SeedDefault inserts the built-in template when the table is empty. It reports whether a
// row was created.
func (s *promptService) SeedDefault(ctx context.Context) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PromptTemplateRepository()

	count, err := repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count prompt templates: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	now := s.now()
	tmpl := &entity.PromptTemplate{
		Name:         entity.DefaultPromptName,
		PromptText:   entity.DefaultPromptText,
		IsActive:     true,
		CreatedDate:  now,
		ModifiedDate: now,
	}
	if err := repo.Create(ctx, tmpl); err != nil {
		return false, fmt.Errorf("seed default prompt template: %w", err)
	}
	s.cache.Invalidate()

	s.logger.Info("PROMPTS", "Default prompt template created", map[string]interface{}{"name": tmpl.Name})
	return true, nil
}

func (s *promptService) ensureUniqueName(ctx context.Context, repo contract.PromptTemplateRepository, name string, excludeID uint) error {
	specs := []specification.Specification{specification.ByName{Name: name}}
	if excludeID != 0 {
		specs = append(specs, specification.ExcludeID{ID: excludeID})
	}

	existing, err := repo.FindOne(ctx, specs...)
	if err != nil {
		return fmt.Errorf("check prompt template name: %w", err)
	}
	if existing != nil {
		return apperror.Validation(fmt.Sprintf("A prompt template with name '%s' already exists", name))
	}
	return nil
}

func validateTemplate(tmpl *entity.PromptTemplate) error {
	if utf8.RuneCountInString(tmpl.Name) > entity.MaxPromptNameLength {
		return apperror.Validation(fmt.Sprintf("Prompt template name cannot exceed %d characters", entity.MaxPromptNameLength))
	}
	if err := tmpl.Validate(); err != nil {
		return apperror.Validation(err.Error())
	}
	return nil
}

// findDefaultTemplate prefers the active "Basic Summary" template and falls back to the
// first active one.
func findDefaultTemplate(ctx context.Context, repo contract.PromptTemplateRepository) (*entity.PromptTemplate, error) {
	tmpl, err := repo.FindOne(ctx,
		specification.ByName{Name: entity.DefaultPromptName},
		specification.ActiveOnly{},
	)
	if err != nil {
		return nil, fmt.Errorf("find default prompt template: %w", err)
	}
	if tmpl != nil {
		return tmpl, nil
	}

	tmpl, err = repo.FindOne(ctx, specification.ActiveOnly{}, specification.OrderBy{Field: "id"})
	if err != nil {
		return nil, fmt.Errorf("find active prompt template: %w", err)
	}
	return tmpl, nil
}

// resolvePromptTemplate returns the template an upload should use. A requested id must
// name an active template; no id means the default.
func resolvePromptTemplate(ctx context.Context, repo contract.PromptTemplateRepository, id *uint) (*entity.PromptTemplate, error) {
	if id != nil {
		tmpl, err := repo.FindOne(ctx, specification.ByID{ID: *id}, specification.ActiveOnly{})
		if err != nil {
			return nil, fmt.Errorf("find prompt template: %w", err)
		}
		if tmpl == nil {
			return nil, apperror.Validation("Invalid prompt template selected")
		}
		return tmpl, nil
	}

	tmpl, err := findDefaultTemplate(ctx, repo)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, apperror.Validation("No active prompt templates available. Please create one.")
	}
	return tmpl, nil
}

func toPromptResponse(t *entity.PromptTemplate) *dto.PromptTemplateResponse {
	return &dto.PromptTemplateResponse{
		Id:           t.Id,
		Name:         t.Name,
		PromptText:   t.PromptText,
		IsActive:     t.IsActive,
		CreatedDate:  t.CreatedDate,
		ModifiedDate: t.ModifiedDate,
	}
}

func toPromptResponses(templates []*entity.PromptTemplate) []*dto.PromptTemplateResponse {
	res := make([]*dto.PromptTemplateResponse, 0, len(templates))
	for _, t := range templates {
		res = append(res, toPromptResponse(t))
	}
	return res
}
