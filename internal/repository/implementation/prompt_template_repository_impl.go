package implementation

import (
	"context"
	"errors"

	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/mapper"
	"pdf-summarizer-be/internal/model"
	"pdf-summarizer-be/internal/repository/contract"
	"pdf-summarizer-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PromptTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PromptTemplateMapper
}

func NewPromptTemplateRepository(db *gorm.DB) contract.PromptTemplateRepository {
	return &PromptTemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewPromptTemplateMapper(),
	}
}

func (r *PromptTemplateRepositoryImpl) Create(ctx context.Context, tmpl *entity.PromptTemplate) error {
	m := r.mapper.ToModel(tmpl)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tmpl = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromptTemplateRepositoryImpl) Update(ctx context.Context, tmpl *entity.PromptTemplate) error {
	m := r.mapper.ToModel(tmpl)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*tmpl = *r.mapper.ToEntity(m)
	return nil
}

func (r *PromptTemplateRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.PromptTemplate{}, id).Error
}

func (r *PromptTemplateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PromptTemplate, error) {
	var m model.PromptTemplate
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PromptTemplateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromptTemplate, error) {
	var models []*model.PromptTemplate
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PromptTemplateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.PromptTemplate{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
