// Package blob provides a content-addressed in-memory store for extracted
// images.
package blob

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// Blob is one stored payload.
type Blob struct {
	// Data is the raw content.
	Data []byte
	// Mime is the media type derived from the extension.
	Mime string
	// Ext is the original file extension, dot included.
	Ext string
}

// Store is a thread-safe content-addressed blob store. Keys are the sha256
// hex digest of the content, so storing the same bytes twice is idempotent.
type Store struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{blobs: make(map[string]Blob)}
}

// Put stores data under its content hash and returns the hash.
func (s *Store) Put(data []byte, ext string) string {
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[key]; !ok {
		s.blobs[key] = Blob{Data: data, Mime: MimeForExt(ext), Ext: ext}
	}
	return key
}

// Get retrieves a blob by its content hash.
func (s *Store) Get(key string) (Blob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	return b, ok
}

// Size returns the number of stored blobs.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}

// MimeForExt maps an image file extension to its media type.
func MimeForExt(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
