package memory

import (
	"time"

	"pdf-summarizer-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const activeTemplatesKey = "prompt_templates:active"

// PromptTemplateCache keeps the active template list hot for the upload page.
type PromptTemplateCache struct {
	cache *cache.Cache
}

func NewPromptTemplateCache(ttl time.Duration) *PromptTemplateCache {
	// Expired items are purged every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &PromptTemplateCache{
		cache: c,
	}
}

func (r *PromptTemplateCache) SaveActive(templates []*entity.PromptTemplate) {
	cp := make([]*entity.PromptTemplate, len(templates))
	for i, t := range templates {
		v := *t
		cp[i] = &v
	}
	r.cache.Set(activeTemplatesKey, cp, cache.DefaultExpiration)
}

func (r *PromptTemplateCache) GetActive() ([]*entity.PromptTemplate, bool) {
	x, found := r.cache.Get(activeTemplatesKey)
	if !found {
		return nil, false
	}
	stored := x.([]*entity.PromptTemplate)
	out := make([]*entity.PromptTemplate, len(stored))
	for i, t := range stored {
		v := *t
		out[i] = &v
	}
	return out, true
}

func (r *PromptTemplateCache) Invalidate() {
	r.cache.Delete(activeTemplatesKey)
}
