package model

import "time"

type Upload struct {
	Id               uint      `gorm:"primaryKey;autoIncrement"`
	Filename         string    `gorm:"type:varchar(255);not null"`
	OriginalFilename string    `gorm:"type:varchar(255);not null"`
	FilePath         string    `gorm:"type:varchar(500);not null"`
	FileHash         string    `gorm:"type:varchar(64);not null;index"`
	SessionId        string    `gorm:"type:varchar(255);index"`
	UploadDate       time.Time `gorm:"not null;index"`
	FileSize         int64     `gorm:"not null"`
	IsCached         bool      `gorm:"not null"`
	Summaries        []Summary `gorm:"foreignKey:UploadId;constraint:OnDelete:CASCADE"`
}

func (Upload) TableName() string {
	return "uploads"
}
