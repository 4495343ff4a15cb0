package dto

import (
	"mime/multipart"
	"time"
)

type IngestRequest struct {
	SessionID        string
	PromptTemplateID *uint
	Files            []*multipart.FileHeader
}

type IngestResult struct {
	UploadIds   []uint   `json:"upload_ids"`
	CachedCount int      `json:"cached_count"`
	Warnings    []string `json:"warnings"`
	Message     string   `json:"message"`
}

type SummaryResponse struct {
	Id               uint      `json:"id"`
	PromptTemplateId *uint     `json:"prompt_template_id"`
	SummaryText      string    `json:"summary_text"`
	CreatedDate      time.Time `json:"created_date"`
	PageCount        int       `json:"page_count"`
	CharCount        int       `json:"char_count"`
}

type UploadResponse struct {
	Id               uint               `json:"id"`
	Filename         string             `json:"filename"`
	OriginalFilename string             `json:"original_filename"`
	FileHash         string             `json:"file_hash"`
	UploadDate       time.Time          `json:"upload_date"`
	FileSize         int64              `json:"file_size"`
	IsCached         bool               `json:"is_cached"`
	Summaries        []*SummaryResponse `json:"summaries"`
}

type IndexResponse struct {
	Templates         []*PromptTemplateResponse `json:"templates"`
	DefaultTemplateId *uint                     `json:"default_template_id"`
	RecentUploads     []*UploadResponse         `json:"recent_uploads"`
	MaxFileSizeMB     int                       `json:"max_file_size_mb"`
}

type DownloadResponse struct {
	Filename string
	Content  string
}
