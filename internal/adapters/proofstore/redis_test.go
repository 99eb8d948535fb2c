package proofstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"water-distribution-service/internal/ports"
)

func newTestStore(t *testing.T) *RedisProofStore {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisProofStore(client)
}

func TestRedisProofStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	blob := []byte("jpeg-bytes-\x00\x01\x02")
	if err := store.Put(ctx, "proof:delivery:r1:o1", blob); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, "proof:delivery:r1:o1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != string(blob) {
		t.Fatalf("blob mismatch: got %q, want %q", got, blob)
	}
}

func TestRedisProofStoreMissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "proof:delivery:nope:nope")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("err = %v, want ports.ErrNotFound", err)
	}
}

func TestRedisProofStoreEmptyKeyRejected(t *testing.T) {
	store := newTestStore(t)

	if err := store.Put(context.Background(), "", []byte("x")); err == nil {
		t.Fatal("expected error for empty key")
	}
}
