package proofstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"water-distribution-service/internal/ports"
)

// Redis-backed proof-of-delivery blob store. Payloads are opaque and
// stored verbatim under their stop key, with no expiry: proofs must
// survive until an operator archives them.
type RedisProofStore struct {
	client *redis.Client
}

var _ ports.ProofStore = (*RedisProofStore)(nil)

func NewRedisProofStore(client *redis.Client) *RedisProofStore {
	return &RedisProofStore{client: client}
}

func (s *RedisProofStore) Put(ctx context.Context, key string, blob []byte) error {
	if key == "" {
		return errors.New("proof store: key must be non-empty")
	}
	if err := s.client.Set(ctx, key, blob, 0).Err(); err != nil {
		return fmt.Errorf("proof store: set %q: %w", key, err)
	}
	return nil
}

func (s *RedisProofStore) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("proof store: get %q: %w", key, err)
	}
	return blob, nil
}
