package docstore

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore serves documents from a map. Test double for S3Store.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]string)}
}

func (s *MemoryStore) Put(key, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = text
}

func (s *MemoryStore) Fetch(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[key]
	if !ok {
		return "", fmt.Errorf("document %q not found", key)
	}
	return text, nil
}
