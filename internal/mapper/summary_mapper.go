package mapper

import (
	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/model"
)

type SummaryMapper struct{}

func NewSummaryMapper() *SummaryMapper {
	return &SummaryMapper{}
}

func (m *SummaryMapper) ToEntity(s *model.Summary) *entity.Summary {
	if s == nil {
		return nil
	}

	return &entity.Summary{
		Id:               s.Id,
		UploadId:         s.UploadId,
		PromptTemplateId: copyID(s.PromptTemplateId),
		SummaryText:      s.SummaryText,
		CreatedDate:      s.CreatedDate.UTC(),
		PageCount:        s.PageCount,
		CharCount:        s.CharCount,
	}
}

func (m *SummaryMapper) ToModel(s *entity.Summary) *model.Summary {
	if s == nil {
		return nil
	}

	return &model.Summary{
		Id:               s.Id,
		UploadId:         s.UploadId,
		PromptTemplateId: copyID(s.PromptTemplateId),
		SummaryText:      s.SummaryText,
		CreatedDate:      s.CreatedDate.UTC(),
		PageCount:        s.PageCount,
		CharCount:        s.CharCount,
	}
}

func (m *SummaryMapper) ToEntities(summaries []*model.Summary) []*entity.Summary {
	entities := make([]*entity.Summary, len(summaries))
	for i, s := range summaries {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
