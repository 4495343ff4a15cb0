package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"pdf-summarizer-be/internal/entity"
	"pdf-summarizer-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIsolation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewSummaryService(newFactory(db), nopLogger())
	tmpl := seedTemplate(t, db, "Basic Summary", true)

	now := time.Now().UTC()
	for i, sid := range []string{"session-a", "session-a", "session-b"} {
		u := newUpload("h", []string{"a1.pdf", "a2.pdf", "b1.pdf"}[i])
		u.SessionId = sid
		u.UploadDate = now.Add(time.Duration(i) * time.Minute)
		seedUpload(t, db, u)
		seedSummary(t, db, &entity.Summary{UploadId: u.Id, PromptTemplateId: &tmpl.Id, SummaryText: "s"})
	}

	mine, err := svc.MyUploads(ctx, "session-a")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a2.pdf", mine[0].OriginalFilename, "newest first")
	assert.Equal(t, "a1.pdf", mine[1].OriginalFilename)
	for _, u := range mine {
		assert.Len(t, u.Summaries, 1)
	}

	theirs, err := svc.MyUploads(ctx, "session-b")
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, "b1.pdf", theirs[0].OriginalFilename)

	none, err := svc.MyUploads(ctx, "session-c")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.AllSummaries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	recent, err := svc.RecentUploads(ctx, "session-a", 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "a2.pdf", recent[0].OriginalFilename)
}

func TestResults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewSummaryService(newFactory(db), nopLogger())

	a := seedUpload(t, db, newUpload("ha", "a.pdf"))
	b := seedUpload(t, db, newUpload("hb", "b.pdf"))
	seedUpload(t, db, newUpload("hc", "c.pdf"))

	res, err := svc.Results(ctx, []uint{a.Id, b.Id, 999})
	require.NoError(t, err)
	assert.Len(t, res, 2)

	_, err = svc.Results(ctx, nil)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestDownload(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewSummaryService(newFactory(db), nopLogger())

	u := newUpload("h", "report.final.pdf")
	u.IsCached = true
	seedUpload(t, db, u)
	created := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	s := seedSummary(t, db, &entity.Summary{
		UploadId:    u.Id,
		SummaryText: "The document says things.",
		CreatedDate: created,
		PageCount:   12,
		CharCount:   1234567,
	})

	res, err := svc.Download(ctx, s.Id)
	require.NoError(t, err)
	assert.Equal(t, "summary_report.final.txt", res.Filename)

	want := "Summary of: report.final.pdf\n" +
		"Generated: 2026-01-02 15:04:05\n" +
		"Pages: 12\n" +
		"Original document characters: 1,234,567\n" +
		"Source: Cached summary\n" +
		"\n" + strings.Repeat("=", 80) + "\n\n" +
		"The document says things."
	assert.Equal(t, want, res.Content)

	_, err = svc.Download(ctx, 4242)
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestFormatDownloadWithoutCacheLine(t *testing.T) {
	u := &entity.Upload{OriginalFilename: "a.pdf"}
	s := &entity.Summary{SummaryText: "x", CharCount: 999}
	out := FormatDownload(u, s)
	assert.NotContains(t, out, "Source:")
	assert.Contains(t, out, "Original document characters: 999\n")
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []uint
		wantErr string
	}{
		{name: "single", raw: "7", want: []uint{7}},
		{name: "several", raw: "1,2,3", want: []uint{1, 2, 3}},
		{name: "spaces and blanks", raw: " 4 , ,5,", want: []uint{4, 5}},
		{name: "empty", raw: "", wantErr: "No results to display"},
		{name: "only commas", raw: ",,", wantErr: "No results to display"},
		{name: "not a number", raw: "1,abc", wantErr: "Invalid upload id: abc"},
		{name: "zero", raw: "0", wantErr: "Invalid upload id: 0"},
		{name: "negative", raw: "-3", wantErr: "Invalid upload id: -3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIDList(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, apperror.Is(err, apperror.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatThousands(t *testing.T) {
	tests := map[int]string{
		0:          "0",
		999:        "999",
		1000:       "1,000",
		12345:      "12,345",
		123456:     "123,456",
		1234567:    "1,234,567",
		-1234:      "-1,234",
		1000000000: "1,000,000,000",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatThousands(in), "formatThousands(%d)", in)
	}
}

func TestDownloadFilename(t *testing.T) {
	assert.Equal(t, "summary_doc.txt", DownloadFilename("doc.pdf"))
	assert.Equal(t, "summary_archive.tar.txt", DownloadFilename("archive.tar.gz"))
	assert.Equal(t, "summary_README.txt", DownloadFilename("README"))
}
