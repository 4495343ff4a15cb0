package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const timestampLayout = "20060102_150405"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// StoredFile describes a file persisted in the upload folder.
type StoredFile struct {
	Path             string
	StoredFilename   string
	OriginalFilename string
	Size             int64
}

type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save copies the multipart file to {stem}_{YYYYMMDD_HHMMSS}{ext}. If that name is taken a
// numeric suffix is added to the stem, so concurrent writers never overwrite each other.
func (s *LocalStorage) Save(fh *multipart.FileHeader, now time.Time) (*StoredFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	return s.SaveReader(src, fh.Filename, now)
}

func (s *LocalStorage) SaveReader(src io.Reader, originalFilename string, now time.Time) (*StoredFile, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload folder: %w", err)
	}

	safe := SecureFilename(originalFilename)
	if safe == "" {
		safe = "upload"
	}
	ext := filepath.Ext(safe)
	stem := strings.TrimSuffix(safe, ext)
	if stem == "" {
		stem = "upload"
	}
	stamp := now.Format(timestampLayout)

	var (
		dst  *os.File
		name string
		err  error
	)
	for attempt := 0; ; attempt++ {
		if attempt == 0 {
			name = fmt.Sprintf("%s_%s%s", stem, stamp, ext)
		} else {
			name = fmt.Sprintf("%s-%d_%s%s", stem, attempt, stamp, ext)
		}
		dst, err = os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) || attempt >= 1000 {
			return nil, fmt.Errorf("create stored file: %w", err)
		}
	}

	path := filepath.Join(s.dir, name)
	size, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write stored file: %w", err)
	}

	return &StoredFile{
		Path:             path,
		StoredFilename:   name,
		OriginalFilename: originalFilename,
		Size:             size,
	}, nil
}

// Remove deletes a stored file and reports how many bytes were freed. A file that is already
// gone is not an error and frees nothing.
func (s *LocalStorage) Remove(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	return info.Size(), nil
}

// SecureFilename reduces a client supplied name to a flat ASCII name made of letters, digits,
// '_', '.' and '-'. The result may be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)
	ascii := make([]rune, 0, len(name))
	for _, r := range name {
		if r < 128 {
			ascii = append(ascii, r)
		}
	}
	name = string(ascii)

	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}
