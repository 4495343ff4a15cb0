package specification

import "gorm.io/gorm"

type ByUploadID struct {
	UploadID uint
}

func (s ByUploadID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("upload_id = ?", s.UploadID)
}

type ByUploadIDs struct {
	UploadIDs []uint
}

func (s ByUploadIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("upload_id IN ?", s.UploadIDs)
}

// ByPromptTemplateID matches summaries generated with the given template; nil matches
// summaries generated without one.
type ByPromptTemplateID struct {
	ID *uint
}

func (s ByPromptTemplateID) Apply(db *gorm.DB) *gorm.DB {
	if s.ID == nil {
		return db.Where("prompt_template_id IS NULL")
	}
	return db.Where("prompt_template_id = ?", *s.ID)
}

// CachedSummaryFor finds reusable summaries: summaries whose upload has the digest and
// whose template matches, earliest first.
type CachedSummaryFor struct {
	FileHash         string
	PromptTemplateID *uint
}

func (s CachedSummaryFor) Apply(db *gorm.DB) *gorm.DB {
	db = db.Joins("JOIN uploads ON uploads.id = summaries.upload_id").
		Where("uploads.file_hash = ?", s.FileHash)
	if s.PromptTemplateID == nil {
		db = db.Where("summaries.prompt_template_id IS NULL")
	} else {
		db = db.Where("summaries.prompt_template_id = ?", *s.PromptTemplateID)
	}
	return db.Order("summaries.id ASC")
}
