package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

var _ Store = (*TieredStore)(nil)

// TieredStore tries the primary store first and falls back to the secondary
// on unavailability. The fallback is per operation, not a sticky mode
// switch: a recovered primary is used again on the very next call.
// Store unavailability never propagates to callers of Get/Set.
type TieredStore struct {
	primary   Store
	secondary Store
}

func NewTieredStore(primary, secondary Store) *TieredStore {
	return &TieredStore{
		primary:   primary,
		secondary: secondary,
	}
}

func (s *TieredStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.primary.Get(ctx, key)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		slog.Warn("Primary store read failed, using fallback", "key", key, "error", err)
	}

	// A miss in the primary still consults the fallback: entries written
	// during a primary outage live only there.
	return s.secondary.Get(ctx, key)
}

func (s *TieredStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.primary.Set(ctx, key, value, ttl); err != nil {
		slog.Warn("Primary store write failed, using fallback", "key", key, "error", err)
		return s.secondary.Set(ctx, key, value, ttl)
	}
	return nil
}

func (s *TieredStore) Delete(ctx context.Context, key string) error {
	primaryErr := s.primary.Delete(ctx, key)
	secondaryErr := s.secondary.Delete(ctx, key)
	if primaryErr != nil {
		return primaryErr
	}
	return secondaryErr
}
