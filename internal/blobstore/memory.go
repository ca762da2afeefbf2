package blobstore

import (
	"context"
	"sync"
)

const memoryURLPrefix = "memory://"

// InMemoryBlobStore is a test-friendly blob store that keeps content in
// process memory. It is safe for concurrent use.
type InMemoryBlobStore struct {
	mu    sync.RWMutex
	store map[string][]byte
	kinds *MediaRegistry
}

// NewInMemoryBlobStore constructs an in-memory blob store.
func NewInMemoryBlobStore(kinds *MediaRegistry) *InMemoryBlobStore {
	return &InMemoryBlobStore{
		store: make(map[string][]byte),
		kinds: kinds,
	}
}

// Put saves the payload and returns a memory:// URL.
func (s *InMemoryBlobStore) Put(ctx context.Context, key, contentType string, body []byte) (*Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = ctx
	data := make([]byte, len(body))
	copy(data, body)
	s.store[key] = data

	upload := &Upload{URL: memoryURLPrefix + key}
	if s.kinds != nil && s.kinds.WantsThumbnail(contentType) {
		thumb := memoryURLPrefix + "thumb/" + key
		upload.ThumbnailURL = &thumb
	}
	return upload, nil
}

// Remove deletes the stored payload.
func (s *InMemoryBlobStore) Remove(ctx context.Context, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = ctx
	key, ok := cutMemoryPrefix(fileURL)
	if !ok {
		return nil
	}
	if _, exists := s.store[key]; !exists {
		return ErrBlobNotFound
	}
	delete(s.store, key)
	return nil
}

// Get retrieves a stored payload, for test assertions.
func (s *InMemoryBlobStore) Get(fileURL string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key, ok := cutMemoryPrefix(fileURL)
	if !ok {
		return nil, false
	}
	data, exists := s.store[key]
	if !exists {
		return nil, false
	}
	copyData := make([]byte, len(data))
	copy(copyData, data)
	return copyData, true
}

// Len reports how many objects are stored, for test assertions.
func (s *InMemoryBlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.store)
}

func cutMemoryPrefix(url string) (string, bool) {
	if len(url) < len(memoryURLPrefix) || url[:len(memoryURLPrefix)] != memoryURLPrefix {
		return "", false
	}
	return url[len(memoryURLPrefix):], true
}
