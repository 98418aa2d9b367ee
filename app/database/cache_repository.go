package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lysyi3m/gene-comb/app/cache"
)

var _ cache.Store = (*CacheRepository)(nil)

// CacheRepository is the process-local fallback cache store. It honors the
// same TTL contract as the primary store and stays bounded by pruning the
// oldest rows past maxEntries.
type CacheRepository struct {
	db         *DB
	maxEntries int
	now        func() time.Time
}

func NewCacheRepository(db *DB, maxEntries int) *CacheRepository {
	return &CacheRepository{
		db:         db,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	var expiresAt int64

	err := r.db.QueryRowContext(ctx, `
		SELECT value, expires_at FROM cache_entries WHERE key = ?
	`, key).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, cache.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if r.now().Unix() >= expiresAt {
		// Expired entries behave exactly like absent ones.
		_, _ = r.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key)
		return nil, cache.ErrCacheMiss
	}

	return value, nil
}

func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := r.now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, inserted_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			inserted_at = excluded.inserted_at,
			expires_at = excluded.expires_at
	`, key, value, now.Unix(), now.Add(ttl).Unix())
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return r.prune(ctx)
}

func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// prune drops expired rows, then the oldest rows beyond maxEntries.
func (r *CacheRepository) prune(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at <= ?`, r.now().Unix())
	if err != nil {
		return fmt.Errorf("failed to prune expired entries: %w", err)
	}

	if r.maxEntries <= 0 {
		return nil
	}

	_, err = r.db.ExecContext(ctx, `
		DELETE FROM cache_entries WHERE key IN (
			SELECT key FROM cache_entries
			ORDER BY inserted_at DESC
			LIMIT -1 OFFSET ?
		)
	`, r.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to prune oldest entries: %w", err)
	}

	return nil
}
