package uniprot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lysyi3m/gene-comb/app/gene"
)

const swissProtEntryType = "UniProtKB reviewed (Swiss-Prot)"

// Fields requested from UniProt. Keeping the list explicit keeps response
// payloads small and the raw record shape predictable.
var requestedFields = strings.Join([]string{
	"accession",
	"id",
	"protein_name",
	"gene_names",
	"organism_name",
	"organism_id",
	"length",
	"sequence",
	"annotation_score",
	"cc_function",
	"cc_subcellular_location",
	"cc_tissue_specificity",
	"cc_developmental_stage",
	"cc_induction",
	"cc_ptm",
	"ft_mod_res",
	"ft_variant",
	"xref_pdb",
	"xref_interpro",
	"xref_pfam",
	"references",
}, ",")

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	OrganismID int
	UserAgent  string
}

// Client fetches raw UniProtKB records for validated gene symbols.
type Client struct {
	httpClient *http.Client
	opts       Options
}

func NewClient(httpClient *http.Client, opts Options) *Client {
	if opts.Retries < 1 {
		opts.Retries = 1
	}
	return &Client{
		httpClient: httpClient,
		opts:       opts,
	}
}

// Fetch returns the canonical reviewed entry for the given gene symbol.
// Returns gene.ErrNotFound when no reviewed entry for the configured organism
// exists, and gene.ErrUpstreamUnavailable on network failure, timeout, or a
// server-side error.
func (c *Client) Fetch(ctx context.Context, symbol string) (*Entry, error) {
	resp, err := c.query(ctx, symbol)
	if err != nil {
		return nil, err
	}

	best := c.selectEntry(resp.Results)
	if best == nil {
		return nil, fmt.Errorf("no reviewed entry for '%s': %w", symbol, gene.ErrNotFound)
	}

	return best, nil
}

// Exists is a lighter existence probe: it stops after entry selection,
// before any feature extraction happens downstream.
func (c *Client) Exists(ctx context.Context, symbol string) (bool, error) {
	resp, err := c.query(ctx, symbol)
	if err != nil {
		if errors.Is(err, gene.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return c.selectEntry(resp.Results) != nil, nil
}

// selectEntry filters to the configured organism and Swiss-Prot reviewed
// entries, then picks the highest annotation score.
func (c *Client) selectEntry(results []Entry) *Entry {
	var best *Entry
	for i := range results {
		entry := &results[i]
		if entry.Organism.TaxonID != c.opts.OrganismID {
			continue
		}
		if entry.EntryType != swissProtEntryType {
			continue
		}
		if best == nil || entry.AnnotationScore > best.AnnotationScore {
			best = entry
		}
	}
	return best
}

func (c *Client) query(ctx context.Context, symbol string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf("gene_exact:%s AND organism_id:%d AND reviewed:true", symbol, c.opts.OrganismID))
	params.Set("format", "json")
	params.Set("size", "5")
	params.Set("fields", requestedFields)

	requestURL := c.opts.BaseURL + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.opts.Retries; attempt++ {
		resp, err := c.doRequest(ctx, requestURL)
		if err == nil {
			return resp, nil
		}

		// Classified errors are final; only transport-level failures are
		// worth another attempt.
		if errors.Is(err, gene.ErrNotFound) || errors.Is(err, gene.ErrUpstreamUnavailable) {
			return nil, err
		}
		if ctx.Err() != nil {
			break
		}

		slog.Warn("UniProt request failed", "symbol", symbol, "attempt", attempt, "error", err)
		lastErr = err
	}

	return nil, fmt.Errorf("UniProt unreachable after %d attempts: %w (%w)", c.opts.Retries, gene.ErrUpstreamUnavailable, lastErr)
}

func (c *Client) doRequest(ctx context.Context, requestURL string) (*SearchResponse, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, gene.ErrNotFound
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		slog.Error("UniProt server error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("UniProt returned %d: %w", resp.StatusCode, gene.ErrUpstreamUnavailable)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d %s", resp.StatusCode, resp.Status)
	}

	var search SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &search, nil
}
