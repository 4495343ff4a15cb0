package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRejectsCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a pdf"), 0o644))

	text, pages, err := NewExtractor().Extract(path)
	assert.Error(t, err)
	assert.Empty(t, text)
	assert.Zero(t, pages)
}

func TestExtractMissingFile(t *testing.T) {
	_, _, err := NewExtractor().Extract(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}
