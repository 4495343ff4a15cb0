package model

import "time"

type Summary struct {
	Id               uint      `gorm:"primaryKey;autoIncrement"`
	UploadId         uint      `gorm:"not null;index"`
	PromptTemplateId *uint     `gorm:"index"`
	SummaryText      string    `gorm:"type:text;not null"`
	CreatedDate      time.Time `gorm:"not null"`
	PageCount        int
	CharCount        int

	// Belongs-to, used for the foreign key only. Deleting a referenced template is refused by the service.
	PromptTemplate *PromptTemplate `gorm:"foreignKey:PromptTemplateId;constraint:OnDelete:RESTRICT"`
}

func (Summary) TableName() string {
	return "summaries"
}
