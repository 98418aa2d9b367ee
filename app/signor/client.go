package signor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lysyi3m/gene-comb/app/gene"
)

// Column offsets in the SIGNOR getData TSV.
const (
	colEntityA   = 0
	colTypeA     = 1
	colIDA       = 2
	colEntityB   = 4
	colTypeB     = 5
	colIDB       = 6
	colEffect    = 8
	colMechanism = 9
	colResidue   = 10
	colSequence  = 11
	colPMID      = 21
	colSentence  = 25
	colSignorID  = 26
	colScore     = 27
	minColumns   = 22
)

type Options struct {
	BaseURL    string
	Timeout    time.Duration
	OrganismID int
	UserAgent  string
}

// Client fetches signaling interaction data from SIGNOR for a UniProt
// accession.
type Client struct {
	httpClient *http.Client
	opts       Options
}

func NewClient(httpClient *http.Client, opts Options) *Client {
	return &Client{
		httpClient: httpClient,
		opts:       opts,
	}
}

// Fetch returns structured interaction data, or nil when SIGNOR has no
// relations for the accession. Upstream failure is classified as
// gene.ErrUpstreamUnavailable.
func (c *Client) Fetch(ctx context.Context, accession string) (*Data, error) {
	rows, err := c.fetchTSV(ctx, accession)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return structure(rows, accession), nil
}

func (c *Client) fetchTSV(ctx context.Context, accession string) ([]row, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	params := url.Values{}
	params.Set("organism", strconv.Itoa(c.opts.OrganismID))
	params.Set("id", accession)

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", c.opts.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("SIGNOR fetch failed", "accession", accession, "error", err)
		return nil, fmt.Errorf("SIGNOR unreachable: %w (%w)", err, gene.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("SIGNOR HTTP error", "accession", accession, "status", resp.StatusCode)
		return nil, fmt.Errorf("SIGNOR returned %d: %w", resp.StatusCode, gene.ErrUpstreamUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return parseTSV(string(body)), nil
}

func parseTSV(body string) []row {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	var rows []row
	for _, line := range strings.Split(body, "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < minColumns {
			continue
		}
		rows = append(rows, row{
			EntityA:   field(parts, colEntityA),
			TypeA:     field(parts, colTypeA),
			IDA:       field(parts, colIDA),
			EntityB:   field(parts, colEntityB),
			TypeB:     field(parts, colTypeB),
			IDB:       field(parts, colIDB),
			Effect:    field(parts, colEffect),
			Mechanism: field(parts, colMechanism),
			Residue:   field(parts, colResidue),
			Sequence:  field(parts, colSequence),
			PMID:      field(parts, colPMID),
			Sentence:  field(parts, colSentence),
			SignorID:  field(parts, colSignorID),
			Score:     field(parts, colScore),
		})
	}
	return rows
}

func field(parts []string, idx int) string {
	if idx < len(parts) {
		return strings.TrimSpace(parts[idx])
	}
	return ""
}

func structure(rows []row, accession string) *Data {
	return &Data{
		EntityName:     resolveEntityName(rows, accession),
		TotalRelations: len(rows),
		Interactions:   buildInteractions(rows),
		Modifications:  buildModifications(rows, accession),
	}
}

func resolveEntityName(rows []row, accession string) string {
	for _, r := range rows {
		if r.IDA == accession {
			return r.EntityA
		}
		if r.IDB == accession {
			return r.EntityB
		}
	}
	return accession
}

// buildInteractions deduplicates rows by (entityA, entityB, effect,
// mechanism), aggregating PMIDs and keeping the highest score per group.
func buildInteractions(rows []row) []Interaction {
	type groupKey struct {
		entityA, entityB, effect, mechanism string
	}

	groups := make(map[groupKey]*Interaction)
	seenPMIDs := make(map[groupKey]map[string]bool)
	var order []groupKey

	for _, r := range rows {
		key := groupKey{r.EntityA, r.EntityB, r.Effect, r.Mechanism}
		score := safeFloat(r.Score)

		g, ok := groups[key]
		if !ok {
			g = &Interaction{
				EntityA:   r.EntityA,
				TypeA:     r.TypeA,
				IDA:       r.IDA,
				EntityB:   r.EntityB,
				TypeB:     r.TypeB,
				IDB:       r.IDB,
				Effect:    r.Effect,
				Mechanism: r.Mechanism,
				Score:     score,
				SignorID:  r.SignorID,
			}
			groups[key] = g
			seenPMIDs[key] = make(map[string]bool)
			order = append(order, key)
		} else if score > g.Score {
			g.Score = score
		}

		if r.PMID != "" && !seenPMIDs[key][r.PMID] {
			seenPMIDs[key][r.PMID] = true
			g.PMIDs = append(g.PMIDs, r.PMID)
			if r.Sentence != "" && len(g.Sentences) < 3 {
				g.Sentences = append(g.Sentences, r.Sentence)
			}
		}
	}

	result := make([]Interaction, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.Score = math.Round(g.Score*1000) / 1000
		sort.Strings(g.PMIDs)
		result = append(result, *g)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})
	return result
}

// buildModifications extracts unique modification sites where the queried
// protein is the target and both residue and mechanism are present.
func buildModifications(rows []row, accession string) []Modification {
	type dedupKey struct {
		modifier, residue, mechanism string
	}

	seen := make(map[dedupKey]bool)
	var mods []Modification

	for _, r := range rows {
		if r.IDB != accession || r.Residue == "" || r.Mechanism == "" {
			continue
		}

		key := dedupKey{r.EntityA, r.Residue, r.Mechanism}
		if seen[key] {
			continue
		}
		seen[key] = true

		mods = append(mods, Modification{
			Modifier:  r.EntityA,
			Residue:   r.Residue,
			Sequence:  r.Sequence,
			Effect:    r.Effect,
			Mechanism: r.Mechanism,
		})
	}

	return mods
}

func safeFloat(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}
