package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lysyi3m/gene-comb/app/cache"
)

func testRepository(t *testing.T, maxEntries int) *CacheRepository {
	t.Helper()

	db, err := NewConnection(":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewCacheRepository(db, maxEntries)
}

func TestCacheRepository_RoundTrip(t *testing.T) {
	repo := testRepository(t, 10)
	ctx := context.Background()

	if err := repo.Set(ctx, "gene_summary:v2:TP53", []byte(`{"geneSymbol":"TP53"}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, err := repo.Get(ctx, "gene_summary:v2:TP53")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != `{"geneSymbol":"TP53"}` {
		t.Errorf("Expected stored payload, got '%s'", data)
	}

	_, err = repo.Get(ctx, "gene_summary:v2:BRCA1")
	if !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss for absent key, got %v", err)
	}
}

func TestCacheRepository_SetReplacesExistingEntry(t *testing.T) {
	repo := testRepository(t, 10)
	ctx := context.Background()

	if err := repo.Set(ctx, "k", []byte("old"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set(ctx, "k", []byte("new"), time.Minute); err != nil {
		t.Fatalf("Second set failed: %v", err)
	}

	data, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("Expected replaced value 'new', got '%s'", data)
	}
}

func TestCacheRepository_ExpiredEntryBehavesLikeAbsent(t *testing.T) {
	repo := testRepository(t, 10)
	ctx := context.Background()

	current := time.Now()
	repo.now = func() time.Time { return current }

	if err := repo.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	current = current.Add(61 * time.Second)

	_, err := repo.Get(ctx, "k")
	if !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss for expired entry, got %v", err)
	}

	// The expired row was removed, not just hidden.
	var count int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM cache_entries WHERE key = 'k'`).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected expired row deleted, found %d rows", count)
	}
}

func TestCacheRepository_Delete(t *testing.T) {
	repo := testRepository(t, 10)
	ctx := context.Background()

	if err := repo.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, err := repo.Get(ctx, "k")
	if !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestCacheRepository_PruneKeepsNewestEntries(t *testing.T) {
	repo := testRepository(t, 3)
	ctx := context.Background()

	current := time.Now()
	repo.now = func() time.Time { return current }

	for i := 0; i < 5; i++ {
		key := fmt.Sprintf("k%d", i)
		if err := repo.Set(ctx, key, []byte("v"), time.Hour); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
		current = current.Add(time.Second)
	}

	var count int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM cache_entries`).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 entries after prune, got %d", count)
	}

	// Oldest rows went first.
	for _, key := range []string{"k0", "k1"} {
		if _, err := repo.Get(ctx, key); !errors.Is(err, cache.ErrCacheMiss) {
			t.Errorf("Expected %s pruned, got %v", key, err)
		}
	}
	for _, key := range []string{"k2", "k3", "k4"} {
		if _, err := repo.Get(ctx, key); err != nil {
			t.Errorf("Expected %s retained, got %v", key, err)
		}
	}
}

func TestCacheRepository_PruneDropsExpiredRows(t *testing.T) {
	repo := testRepository(t, 10)
	ctx := context.Background()

	current := time.Now()
	repo.now = func() time.Time { return current }

	if err := repo.Set(ctx, "short", []byte("v"), time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	current = current.Add(2 * time.Second)
	if err := repo.Set(ctx, "long", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var count int
	if err := repo.db.QueryRow(`SELECT COUNT(*) FROM cache_entries`).Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected expired row pruned on write, got %d rows", count)
	}
}
