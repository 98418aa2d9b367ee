package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/gene-comb/app/cache"
	"github.com/lysyi3m/gene-comb/app/cfg"
	"github.com/lysyi3m/gene-comb/app/gene"
	"github.com/lysyi3m/gene-comb/app/signor"
)

const signorKeyPrefix = "signor:v1:"

func NewHandler(eng EngineInterface, signorClient SignorInterface) *Handler {
	return &Handler{
		engine: eng,
		signor: signorClient,
	}
}

func (h *Handler) GetGeneSummary(c *gin.Context) {
	symbol, ok := sanitizeSymbol(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid HGNC gene symbol"})
		return
	}

	started := time.Now()
	summary, err := h.engine.Get(c.Request.Context(), symbol)
	if err != nil {
		h.writeError(c, symbol, err)
		return
	}

	slog.Info("Summary served", "symbol", symbol, "duration", time.Since(started))
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) CheckGeneExists(c *gin.Context) {
	symbol, ok := sanitizeSymbol(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid HGNC gene symbol"})
		return
	}

	exists, err := h.engine.Exists(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, gene.ErrNotFound) {
			c.JSON(http.StatusOK, ExistsResponse{Exists: false})
			return
		}
		h.writeError(c, symbol, err)
		return
	}

	c.JSON(http.StatusOK, ExistsResponse{Exists: exists})
}

// GetSignorData resolves the symbol's accession through the engine (served
// from cache when possible), then fetches and caches SIGNOR interaction
// data under its own key prefix.
func (h *Handler) GetSignorData(c *gin.Context) {
	symbol, ok := sanitizeSymbol(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid HGNC gene symbol"})
		return
	}

	ctx := c.Request.Context()
	key := signorKeyPrefix + symbol

	if data, err := h.engine.Store().Get(ctx, key); err == nil {
		var cached signor.Data
		if err := json.Unmarshal(data, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		slog.Warn("SIGNOR cache read failed", "symbol", symbol, "error", err)
	}

	summary, err := h.engine.Get(ctx, symbol)
	if err != nil {
		h.writeError(c, symbol, err)
		return
	}

	data, err := h.signor.Fetch(ctx, summary.Accession)
	if err != nil {
		h.writeError(c, symbol, err)
		return
	}
	if data == nil {
		c.JSON(http.StatusOK, signor.Data{
			Interactions:  []signor.Interaction{},
			Modifications: []signor.Modification{},
		})
		return
	}

	if encoded, err := json.Marshal(data); err == nil {
		if err := h.engine.Store().Set(ctx, key, encoded, cfg.Get().CacheTTL); err != nil {
			slog.Warn("SIGNOR cache write failed", "symbol", symbol, "error", err)
		}
	}

	c.JSON(http.StatusOK, data)
}

// RefreshGene forces a re-fetch, bypassing the cached entry.
func (h *Handler) RefreshGene(c *gin.Context) {
	symbol, ok := sanitizeSymbol(c.Param("symbol"))
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid HGNC gene symbol"})
		return
	}

	summary, err := h.engine.Refresh(c.Request.Context(), symbol)
	if err != nil {
		h.writeError(c, symbol, err)
		return
	}

	slog.Info("Summary refreshed", "symbol", symbol)
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": cfg.Get().Version,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cache": h.engine.Stats(),
	})
}

func (h *Handler) writeError(c *gin.Context, symbol string, err error) {
	switch {
	case errors.Is(err, gene.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Human gene not found in UniProt."})
	case errors.Is(err, gene.ErrUpstreamUnavailable):
		slog.Error("Upstream unavailable", "symbol", symbol, "error", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Upstream service unavailable"})
	case errors.Is(err, gene.ErrMalformedRecord):
		slog.Error("Malformed upstream record", "symbol", symbol, "error", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Upstream record is malformed"})
	default:
		slog.Error("Request failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
