package hasher

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashReader(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty input",
			input: []byte{},
			want:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "short ascii",
			input: []byte("abc"),
			want:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HashReader(bytes.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, 64)
		})
	}
}

func TestHashReaderDeterministic(t *testing.T) {
	data := bytes.Repeat([]byte("%PDF-1.4 sample content "), 1000)

	first, err := HashReader(bytes.NewReader(data))
	require.NoError(t, err)
	second, err := HashReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := HashReader(bytes.NewReader(append(data, 'x')))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestHashReaderIgnoresChunkBoundaries(t *testing.T) {
	data := []byte(strings.Repeat("0123456789", ChunkSize/10*3+7))

	whole, err := HashReader(bytes.NewReader(data))
	require.NoError(t, err)

	// A reader that returns one byte per call must produce the same digest.
	trickled, err := HashReader(&oneByteReader{data: data})
	require.NoError(t, err)

	assert.Equal(t, whole, trickled)
}

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.pdf")
	b := filepath.Join(dir, "renamed-copy.pdf")
	require.NoError(t, os.WriteFile(a, []byte("same bytes"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same bytes"), 0o644))

	ha, err := HashFile(a)
	require.NoError(t, err)
	hb, err := HashFile(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb, "digest must not depend on the file name")

	_, err = HashFile(filepath.Join(dir, "missing.pdf"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestHashReaderPropagatesReadErrors(t *testing.T) {
	_, err := HashReader(&failingReader{})
	assert.EqualError(t, err, "disk gone")
}

func TestHashReaderReadsInChunks(t *testing.T) {
	data := bytes.Repeat([]byte("chunked "), ChunkSize)
	r := &sizeRecordingReader{Reader: bytes.NewReader(data)}

	got, err := HashReader(r)
	require.NoError(t, err)

	want, err := HashReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.False(t, r.wroteTo, "WriteTo must not be used")
	assert.Equal(t, ChunkSize, r.maxRead)
}

// sizeRecordingReader tracks the largest buffer handed to Read and
// exposes WriteTo the way *os.File does.
type sizeRecordingReader struct {
	*bytes.Reader
	maxRead int
	wroteTo bool
}

func (r *sizeRecordingReader) Read(p []byte) (int, error) {
	if len(p) > r.maxRead {
		r.maxRead = len(p)
	}
	return r.Reader.Read(p)
}

func (r *sizeRecordingReader) WriteTo(w io.Writer) (int64, error) {
	r.wroteTo = true
	return r.Reader.WriteTo(w)
}

type oneByteReader struct {
	data []byte
	pos  int
}

func (r *oneByteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	p[0] = r.data[r.pos]
	r.pos++
	return 1, nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}
