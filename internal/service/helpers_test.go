package service

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/model"
	"pdf-summarizer-be/internal/pkg/logger"
	"pdf-summarizer-be/internal/repository/implementation"
	"pdf-summarizer-be/internal/repository/unitofwork"
	"pdf-summarizer-be/pkg/database"
	"pdf-summarizer-be/pkg/events"
	"pdf-summarizer-be/pkg/llm"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGormDBFromDSN(filepath.Join(t.TempDir(), "test.db"), database.Options{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedTemplate(t *testing.T, db *gorm.DB, name string, active bool) *entity.PromptTemplate {
	t.Helper()
	now := time.Now().UTC()
	tmpl := &entity.PromptTemplate{
		Name:         name,
		PromptText:   "Summarize this as " + name + ":",
		IsActive:     active,
		CreatedDate:  now,
		ModifiedDate: now,
	}
	require.NoError(t, implementation.NewPromptTemplateRepository(db).Create(context.Background(), tmpl))
	return tmpl
}

func seedUpload(t *testing.T, db *gorm.DB, u *entity.Upload) *entity.Upload {
	t.Helper()
	require.NoError(t, implementation.NewUploadRepository(db).Create(context.Background(), u))
	return u
}

func seedSummary(t *testing.T, db *gorm.DB, s *entity.Summary) *entity.Summary {
	t.Helper()
	if s.CreatedDate.IsZero() {
		s.CreatedDate = time.Now().UTC()
	}
	require.NoError(t, implementation.NewSummaryRepository(db).Create(context.Background(), s))
	return s
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

func newFactory(db *gorm.DB) unitofwork.RepositoryFactory {
	return unitofwork.NewRepositoryFactory(db)
}

type testFile struct {
	name    string
	content []byte
}

// fileHeaders builds real multipart headers the way fiber hands them to controllers.
func fileHeaders(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile("pdf_files", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["pdf_files"]
}

type fakeExtractor struct {
	mu    sync.Mutex
	text  string
	pages int
	err   error
	calls int
}

func (f *fakeExtractor) Extract(path string) (string, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", 0, f.err
	}
	return f.text, f.pages, nil
}

func (f *fakeExtractor) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeLLM struct {
	mu       sync.Mutex
	response string
	failOn   int // 1-based call number that fails, 0 never
	calls    int
	prompts  []string
	maxToks  []int
}

var errLLMDown = errors.New("llm unavailable")

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) == 0 {
		return f.Generate(ctx, "", opts...)
	}
	return f.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.maxToks = append(f.maxToks, llm.ApplyOptions(opts...).MaxTokens)
	if f.failOn > 0 && f.calls == f.failOn {
		return "", errLLMDown
	}
	return f.response, nil
}

func (f *fakeLLM) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}

func nopLogger() logger.ILogger {
	return logger.NewNopLogger()
}
