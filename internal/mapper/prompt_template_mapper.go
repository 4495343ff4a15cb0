package mapper

import (
	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/model"
)

type PromptTemplateMapper struct{}

func NewPromptTemplateMapper() *PromptTemplateMapper {
	return &PromptTemplateMapper{}
}

func (m *PromptTemplateMapper) ToEntity(p *model.PromptTemplate) *entity.PromptTemplate {
	if p == nil {
		return nil
	}

	return &entity.PromptTemplate{
		Id:           p.Id,
		Name:         p.Name,
		PromptText:   p.PromptText,
		IsActive:     p.IsActive,
		CreatedDate:  p.CreatedDate.UTC(),
		ModifiedDate: p.ModifiedDate.UTC(),
	}
}

func (m *PromptTemplateMapper) ToModel(p *entity.PromptTemplate) *model.PromptTemplate {
	if p == nil {
		return nil
	}

	return &model.PromptTemplate{
		Id:           p.Id,
		Name:         p.Name,
		PromptText:   p.PromptText,
		IsActive:     p.IsActive,
		CreatedDate:  p.CreatedDate.UTC(),
		ModifiedDate: p.ModifiedDate.UTC(),
	}
}

func (m *PromptTemplateMapper) ToEntities(templates []*model.PromptTemplate) []*entity.PromptTemplate {
	entities := make([]*entity.PromptTemplate, len(templates))
	for i, p := range templates {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
