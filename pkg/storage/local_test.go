package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "report.pdf", want: "report.pdf"},
		{in: "My Annual Report.PDF", want: "My_Annual_Report.PDF"},
		{in: "../../etc/passwd", want: "etc_passwd"},
		{in: `C:\Users\me\doc.pdf`, want: "C_Users_me_doc.pdf"},
		{in: "résumé.pdf", want: "resume.pdf"},
		{in: "...", want: ""},
		{in: "what?*<>.pdf", want: "what.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SecureFilename(tt.in))
		})
	}
}

func TestSaveReaderNamesFileWithTimestamp(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	now := time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC)

	stored, err := s.SaveReader(strings.NewReader("hello pdf"), "Quarterly Report.pdf", now)
	require.NoError(t, err)

	assert.Equal(t, "Quarterly_Report_20250309_140507.pdf", stored.StoredFilename)
	assert.Equal(t, "Quarterly Report.pdf", stored.OriginalFilename)
	assert.Equal(t, filepath.Join(dir, stored.StoredFilename), stored.Path)
	assert.Equal(t, int64(len("hello pdf")), stored.Size)

	data, err := os.ReadFile(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello pdf", string(data))
}

func TestSaveReaderAvoidsCollisions(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	now := time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC)

	first, err := s.SaveReader(strings.NewReader("one"), "doc.pdf", now)
	require.NoError(t, err)
	second, err := s.SaveReader(strings.NewReader("two"), "doc.pdf", now)
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)
	assert.Equal(t, "doc-1_20250309_140507.pdf", second.StoredFilename)

	data, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}

func TestSaveReaderFallsBackForUnsafeNames(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	stored, err := s.SaveReader(strings.NewReader("x"), "???", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "upload_20250102_030405", stored.StoredFilename)
}

func TestRemove(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	stored, err := s.SaveReader(strings.NewReader("12345"), "a.pdf", time.Now())
	require.NoError(t, err)

	freed, err := s.Remove(stored.Path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), freed)

	freed, err = s.Remove(stored.Path)
	require.NoError(t, err, "removing a missing file is not an error")
	assert.Zero(t, freed)
}
