package entity

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultPromptName   = "Basic Summary"
	DefaultPromptText   = "Please provide a concise summary of the following document. Focus on the main points, key findings, and important details:"
	MaxPromptNameLength = 100
	MaxPromptTextLength = 5000
)

var (
	ErrPromptNameEmpty   = errors.New("Prompt template name cannot be empty")
	ErrPromptTextEmpty   = errors.New("Prompt text cannot be empty")
	ErrPromptTextTooLong = errors.New("Prompt text cannot exceed 5000 characters")
)

type PromptTemplate struct {
	Id           uint
	Name         string
	PromptText   string
	IsActive     bool
	CreatedDate  time.Time
	ModifiedDate time.Time
}

func (p *PromptTemplate) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrPromptNameEmpty
	}
	if strings.TrimSpace(p.PromptText) == "" {
		return ErrPromptTextEmpty
	}
	if utf8.RuneCountInString(p.PromptText) > MaxPromptTextLength {
		return ErrPromptTextTooLong
	}
	return nil
}
