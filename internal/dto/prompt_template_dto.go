package dto

import "time"

type CreatePromptTemplateRequest struct {
	Name       string `json:"name" form:"name" validate:"required,max=100"`
	PromptText string `json:"prompt_text" form:"prompt_text" validate:"required,max=5000"`
	IsActive   *bool  `json:"is_active" form:"is_active"` // nil means active
}

type UpdatePromptTemplateRequest struct {
	Id         uint
	Name       string `json:"name" form:"name" validate:"required,max=100"`
	PromptText string `json:"prompt_text" form:"prompt_text" validate:"required,max=5000"`
	IsActive   *bool  `json:"is_active" form:"is_active"` // nil leaves it unchanged
}

type PromptTemplateResponse struct {
	Id           uint      `json:"id"`
	Name         string    `json:"name"`
	PromptText   string    `json:"prompt_text"`
	IsActive     bool      `json:"is_active"`
	CreatedDate  time.Time `json:"created_date"`
	ModifiedDate time.Time `json:"modified_date"`
}

type PromptTemplateFormResponse struct {
	Name          string `json:"name"`
	PromptText    string `json:"prompt_text"`
	IsActive      bool   `json:"is_active"`
	MaxNameLength int    `json:"max_name_length"`
	MaxTextLength int    `json:"max_text_length"`
}
