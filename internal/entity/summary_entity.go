package entity

import "time"

type Summary struct {
	Id               uint
	UploadId         uint
	PromptTemplateId *uint
	SummaryText      string
	CreatedDate      time.Time
	PageCount        int
	CharCount        int
}
