package normalize

import (
	"log/slog"

	"github.com/lysyi3m/gene-comb/app/gene"
	"github.com/lysyi3m/gene-comb/app/links"
	"github.com/lysyi3m/gene-comb/app/uniprot"
)

// Normalizer runs the full pipeline over one raw record: reference index
// build, feature extraction, cross-reference resolution, assembly. All
// intermediate state is local to a single Run call; only the returned
// summary is shared.
type Normalizer struct {
	registry *links.Registry
}

func NewNormalizer(registry *links.Registry) *Normalizer {
	return &Normalizer{registry: registry}
}

func (n *Normalizer) Run(symbol string, entry *uniprot.Entry) (*gene.Summary, error) {
	idx := BuildReferenceIndex(entry, n.registry)
	sites, variants, diag := ExtractFeatures(entry, idx)
	xrefs, structures := ResolveCrossReferences(entry, n.registry)

	summary, err := Assemble(symbol, entry, idx, sites, variants, structures, xrefs)
	if err != nil {
		return nil, err
	}

	if diag.SkippedCitations > 0 || diag.DroppedFeatures > 0 {
		slog.Warn("Record normalized with drops",
			"symbol", summary.GeneSymbol,
			"skipped_citations", diag.SkippedCitations,
			"dropped_features", diag.DroppedFeatures,
			"ignored_features", diag.IgnoredFeatures)
	} else {
		slog.Debug("Record normalized",
			"symbol", summary.GeneSymbol,
			"ptms", len(summary.PTMs),
			"variants", len(summary.Variants),
			"structures", len(summary.Structures))
	}

	return summary, nil
}
