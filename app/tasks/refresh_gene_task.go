package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/gene-comb/app/gene"
)

// RefresherInterface re-normalizes a symbol and replaces its cache entry.
type RefresherInterface interface {
	Refresh(ctx context.Context, symbol string) (*gene.Summary, error)
}

// RefreshGeneTask keeps a hot cache entry warm by re-fetching it shortly
// before its validity window closes.
type RefreshGeneTask struct {
	Task
	refresher RefresherInterface
}

func NewRefreshGeneTask(symbol string, refresher RefresherInterface) *RefreshGeneTask {
	return &RefreshGeneTask{
		Task:      NewTask(TaskTypeRefreshGene, symbol),
		refresher: refresher,
	}
}

func (t *RefreshGeneTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	_, err := t.refresher.Refresh(ctx, t.Symbol)
	if err != nil {
		// A gene dropped upstream is not worth retrying; the stale
		// entry simply expires.
		if errors.Is(err, gene.ErrNotFound) {
			slog.Warn("Refresh found no entry, letting cache entry expire", "symbol", t.Symbol)
			return nil
		}
		return fmt.Errorf("failed to refresh gene: %w", err)
	}

	slog.Info("Task completed",
		"type", "RefreshGene",
		"symbol", t.Symbol,
		"duration", t.GetDuration())

	return nil
}
