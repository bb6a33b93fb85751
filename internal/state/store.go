// Package state holds the durable key-value slots that cart and wishlist
// snapshots survive in between visits. One JSON blob per namespaced key,
// last writer wins.
package state

import (
	"context"
	"errors"
	"fmt"

	pkgredis "github.com/glowbeauty/glow-backend/pkg/redis"
)

// SnapshotStore reads and writes one serialized state blob per key. Load
// returns (nil, nil) when the key is absent; a malformed blob is the caller's
// problem and must degrade to the empty state, never an error.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
	Delete(ctx context.Context, key string) error
}

// Kind selects which slot family a session key belongs to.
type Kind string

const (
	KindCart     Kind = "cart"
	KindWishlist Kind = "wishlist"
)

type redisStore struct {
	client *pkgredis.Client
	kind   Kind
}

// NewRedisStore builds a SnapshotStore backed by the shared redis client.
func NewRedisStore(client *pkgredis.Client, kind Kind) (SnapshotStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	switch kind {
	case KindCart, KindWishlist:
	default:
		return nil, fmt.Errorf("unknown snapshot kind %q", kind)
	}
	return &redisStore{client: client, kind: kind}, nil
}

func (s *redisStore) key(sessionID string) string {
	if s.kind == KindWishlist {
		return s.client.WishlistStateKey(sessionID)
	}
	return s.client.CartStateKey(sessionID)
}

func (s *redisStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(sessionID))
	if errors.Is(err, pkgredis.ErrKeyMissing) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return []byte(val), nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, blob []byte) error {
	if err := s.client.Set(ctx, s.key(sessionID), string(blob), 0); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
