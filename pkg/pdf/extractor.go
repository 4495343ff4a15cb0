package pdf

import (
	"fmt"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
)

// Extractor pulls plain text out of a stored PDF.
type Extractor interface {
	// Extract returns the document text (pages joined by newlines) and its page count.
	Extract(path string) (string, int, error)
}

type LedongthucExtractor struct{}

var _ Extractor = &LedongthucExtractor{}

func NewExtractor() *LedongthucExtractor {
	return &LedongthucExtractor{}
}

func (e *LedongthucExtractor) Extract(path string) (text string, pages int, err error) {
	// The parser panics on some malformed or encrypted inputs.
	defer func() {
		if r := recover(); r != nil {
			text, pages = "", 0
			err = fmt.Errorf("error reading PDF: %v", r)
		}
	}()

	f, reader, err := lpdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("error reading PDF: %w", err)
	}
	defer f.Close()

	pages = reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			sb.WriteString("\n")
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("error reading PDF page %d: %w", i, err)
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}

	return sb.String(), pages, nil
}
