package mapper

import (
	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/model"
)

type UploadMapper struct {
	summaries *SummaryMapper
}

func NewUploadMapper() *UploadMapper {
	return &UploadMapper{summaries: NewSummaryMapper()}
}

func (m *UploadMapper) ToEntity(u *model.Upload) *entity.Upload {
	if u == nil {
		return nil
	}

	var summaries []*entity.Summary
	if len(u.Summaries) > 0 {
		summaries = make([]*entity.Summary, len(u.Summaries))
		for i := range u.Summaries {
			summaries[i] = m.summaries.ToEntity(&u.Summaries[i])
		}
	}

	return &entity.Upload{
		Id:               u.Id,
		Filename:         u.Filename,
		OriginalFilename: u.OriginalFilename,
		FilePath:         u.FilePath,
		FileHash:         u.FileHash,
		SessionId:        u.SessionId,
		UploadDate:       u.UploadDate.UTC(),
		FileSize:         u.FileSize,
		IsCached:         u.IsCached,
		Summaries:        summaries,
	}
}

// ToModel does not carry summaries; they are persisted through their own repository.
func (m *UploadMapper) ToModel(u *entity.Upload) *model.Upload {
	if u == nil {
		return nil
	}

	return &model.Upload{
		Id:               u.Id,
		Filename:         u.Filename,
		OriginalFilename: u.OriginalFilename,
		FilePath:         u.FilePath,
		FileHash:         u.FileHash,
		SessionId:        u.SessionId,
		UploadDate:       u.UploadDate.UTC(),
		FileSize:         u.FileSize,
		IsCached:         u.IsCached,
	}
}

func (m *UploadMapper) ToEntities(uploads []*model.Upload) []*entity.Upload {
	entities := make([]*entity.Upload, len(uploads))
	for i, u := range uploads {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
