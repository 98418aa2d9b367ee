package api

import (
	"context"

	"github.com/lysyi3m/gene-comb/app/cache"
	"github.com/lysyi3m/gene-comb/app/engine"
	"github.com/lysyi3m/gene-comb/app/gene"
	"github.com/lysyi3m/gene-comb/app/signor"
)

// EngineInterface is the inbound surface the routing layer consumes.
type EngineInterface interface {
	Get(ctx context.Context, symbol string) (*gene.Summary, error)
	Exists(ctx context.Context, symbol string) (bool, error)
	Refresh(ctx context.Context, symbol string) (*gene.Summary, error)
	Store() cache.Store
	Stats() engine.Stats
}

var _ EngineInterface = (*engine.Engine)(nil)

type SignorInterface interface {
	Fetch(ctx context.Context, accession string) (*signor.Data, error)
}

var _ SignorInterface = (*signor.Client)(nil)

type Handler struct {
	engine EngineInterface
	signor SignorInterface
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}
