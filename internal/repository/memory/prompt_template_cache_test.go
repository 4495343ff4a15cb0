package memory

import (
	"testing"
	"time"

	"pdf-summarizer-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptTemplateCache(t *testing.T) {
	c := NewPromptTemplateCache(time.Minute)

	_, ok := c.GetActive()
	assert.False(t, ok)

	c.SaveActive([]*entity.PromptTemplate{{Id: 1, Name: "Basic Summary", IsActive: true}})

	got, ok := c.GetActive()
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Basic Summary", got[0].Name)

	// callers get copies
	got[0].Name = "mutated"
	again, _ := c.GetActive()
	assert.Equal(t, "Basic Summary", again[0].Name)

	c.Invalidate()
	_, ok = c.GetActive()
	assert.False(t, ok)
}
