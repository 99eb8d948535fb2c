package ports

import "context"

// Contract for storing proof-of-delivery and proof-of-visit payloads.
// Blobs are opaque; the core stores and returns them verbatim.
type ProofStore interface {
	Put(ctx context.Context, key string, blob []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}
