package proofstore

import (
	"context"
	"errors"
	"sync"

	"water-distribution-service/internal/ports"
)

// In-memory proof store for local runs and tests.
type MemoryProofStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ ports.ProofStore = (*MemoryProofStore)(nil)

func NewMemoryProofStore() *MemoryProofStore {
	return &MemoryProofStore{blobs: make(map[string][]byte)}
}

func (s *MemoryProofStore) Put(ctx context.Context, key string, blob []byte) error {
	if key == "" {
		return errors.New("proof store: key must be non-empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[key] = stored
	return nil
}

func (s *MemoryProofStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}
