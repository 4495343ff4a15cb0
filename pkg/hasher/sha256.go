package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// ChunkSize is the read buffer used while digesting a stream.
const ChunkSize = 4096

// HashReader returns the lowercase hex SHA-256 digest of everything read from r.
func HashReader(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, ChunkSize)
	// hide WriterTo so reads stay ChunkSize-bounded for *os.File too
	if _, err := io.CopyBuffer(h, struct{ io.Reader }{r}, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashFile digests the file at path without loading it into memory.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return HashReader(f)
}
