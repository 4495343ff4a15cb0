package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByFileHash struct {
	Hash string
}

func (s ByFileHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_hash = ?", s.Hash)
}

type BySessionID struct {
	SessionID string
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// UploadedBefore matches uploads strictly older than the cutoff.
type UploadedBefore struct {
	Cutoff time.Time
}

func (s UploadedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("upload_date < ?", s.Cutoff.UTC())
}

// WithSummaries preloads summaries in creation order.
type WithSummaries struct{}

func (s WithSummaries) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Summaries", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("summaries.id ASC")
	})
}

// NewestFirst orders uploads by date with id as a stable tie-break.
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("upload_date DESC").Order("id DESC")
}
