package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lysyi3m/gene-comb/app/cache"
	"github.com/lysyi3m/gene-comb/app/gene"
	"github.com/lysyi3m/gene-comb/app/normalize"
	"github.com/lysyi3m/gene-comb/app/uniprot"
)

// Cache prefix for versioning
const summaryKeyPrefix = "gene_summary:v2:"

// Fetcher is the external source adapter consumed by the engine.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) (*uniprot.Entry, error)
	Exists(ctx context.Context, symbol string) (bool, error)
}

var _ Fetcher = (*uniprot.Client)(nil)

type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Coalesced int64 `json:"coalesced"`
	Errors    int64 `json:"errors"`
}

// Engine serves canonical gene summaries with per-key fetch coalescing.
// Cached summaries are served within the validity window; on a miss exactly
// one fetch+normalization runs per key regardless of how many callers wait
// on it, and every waiter observes the same summary or the same typed error.
// Failed fetches are never cached.
type Engine struct {
	fetcher    Fetcher
	normalizer *normalize.Normalizer
	store      cache.Store
	ttl        time.Duration

	group singleflight.Group

	hits      atomic.Int64
	misses    atomic.Int64
	coalesced atomic.Int64
	errors    atomic.Int64

	trackerMu sync.Mutex
	tracker   map[string]time.Time // symbol -> last successful store time
}

const maxTrackedSymbols = 1000

func NewEngine(fetcher Fetcher, normalizer *normalize.Normalizer, store cache.Store, ttl time.Duration) *Engine {
	return &Engine{
		fetcher:    fetcher,
		normalizer: normalizer,
		store:      store,
		ttl:        ttl,
		tracker:    make(map[string]time.Time),
	}
}

// Get returns the summary for a validated gene symbol, serving from cache
// when possible. Concurrent callers for the same symbol share one in-flight
// fetch; a caller abandoning its request does not cancel the shared fetch,
// which still populates the cache for the remaining waiters.
func (e *Engine) Get(ctx context.Context, symbol string) (*gene.Summary, error) {
	if summary := e.lookup(ctx, symbol); summary != nil {
		e.hits.Add(1)
		return summary, nil
	}
	e.misses.Add(1)

	ch := e.group.DoChan(symbol, func() (interface{}, error) {
		// Detached from the requesting caller: cancellation of one
		// observer must not cancel the shared fetch.
		return e.resolve(context.WithoutCancel(ctx), symbol)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			e.coalesced.Add(1)
		}
		if res.Err != nil {
			e.errors.Add(1)
			return nil, res.Err
		}
		return res.Val.(*gene.Summary), nil
	}
}

// Exists is the existence-only variant. A cache hit answers immediately; a
// miss probes the source adapter without running feature extraction and
// without populating the cache.
func (e *Engine) Exists(ctx context.Context, symbol string) (bool, error) {
	if summary := e.lookup(ctx, symbol); summary != nil {
		e.hits.Add(1)
		return true, nil
	}
	e.misses.Add(1)

	return e.fetcher.Exists(ctx, symbol)
}

// Refresh re-fetches and re-normalizes a symbol unconditionally, replacing
// the cached entry. Shares the per-key slot with Get, so a refresh never
// races a concurrent miss into a second upstream fetch.
func (e *Engine) Refresh(ctx context.Context, symbol string) (*gene.Summary, error) {
	ch := e.group.DoChan(symbol, func() (interface{}, error) {
		return e.resolve(context.WithoutCancel(ctx), symbol)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			e.errors.Add(1)
			return nil, res.Err
		}
		return res.Val.(*gene.Summary), nil
	}
}

// Store exposes the underlying tiered store for collaborators that cache
// auxiliary payloads under their own key prefixes.
func (e *Engine) Store() cache.Store {
	return e.store
}

func (e *Engine) Stats() Stats {
	return Stats{
		Hits:      e.hits.Load(),
		Misses:    e.misses.Load(),
		Coalesced: e.coalesced.Load(),
		Errors:    e.errors.Load(),
	}
}

// DueForRefresh returns tracked symbols whose cache entries are within lead
// of expiring.
func (e *Engine) DueForRefresh(lead time.Duration) []string {
	e.trackerMu.Lock()
	defer e.trackerMu.Unlock()

	var due []string
	now := time.Now()
	for symbol, storedAt := range e.tracker {
		if now.After(storedAt.Add(e.ttl - lead)) {
			due = append(due, symbol)
		}
	}
	return due
}

// resolve performs the fetch + normalization pipeline and stores the result.
// Runs at most once per key at any time (singleflight slot). The slot is
// released on both success and failure paths; failures are never cached.
func (e *Engine) resolve(ctx context.Context, symbol string) (*gene.Summary, error) {
	entry, err := e.fetcher.Fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}

	summary, err := e.normalizer.Run(symbol, entry)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize summary: %w", err)
	}

	// Store failures are absorbed: the caller still gets its summary and
	// the next request simply fetches again.
	if err := e.store.Set(ctx, summaryKeyPrefix+symbol, data, e.ttl); err != nil {
		slog.Warn("Failed to store summary", "symbol", symbol, "error", err)
	} else {
		e.track(symbol)
	}

	return summary, nil
}

func (e *Engine) lookup(ctx context.Context, symbol string) *gene.Summary {
	data, err := e.store.Get(ctx, summaryKeyPrefix+symbol)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			slog.Warn("Cache read failed", "symbol", symbol, "error", err)
		}
		return nil
	}

	var summary gene.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		slog.Warn("Discarding undecodable cache entry", "symbol", symbol, "error", err)
		_ = e.store.Delete(ctx, summaryKeyPrefix+symbol)
		return nil
	}

	return &summary
}

func (e *Engine) track(symbol string) {
	e.trackerMu.Lock()
	defer e.trackerMu.Unlock()

	if _, ok := e.tracker[symbol]; !ok && len(e.tracker) >= maxTrackedSymbols {
		return
	}
	e.tracker[symbol] = time.Now()
}
