package model

import "time"

type PromptTemplate struct {
	Id           uint      `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	PromptText   string    `gorm:"type:text;not null"`
	IsActive     bool      `gorm:"not null;index"`
	CreatedDate  time.Time `gorm:"not null"`
	ModifiedDate time.Time `gorm:"not null"`
}

func (PromptTemplate) TableName() string {
	return "prompt_templates"
}
