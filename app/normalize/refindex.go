package normalize

import (
	"github.com/lysyi3m/gene-comb/app/gene"
	"github.com/lysyi3m/gene-comb/app/links"
	"github.com/lysyi3m/gene-comb/app/uniprot"
)

// ReferenceIndex maps citation identifiers to resolved citations. Features
// reference the same handful of citations over and over, so the citation
// list is scanned exactly once per record and every later lookup is O(1).
// Lookups for absent identifiers resolve to no citation, never an error.
type ReferenceIndex struct {
	byNumber map[int]*gene.CitationRef
	byPubMed map[string]*gene.CitationRef
	skipped  int
	registry *links.Registry
}

// BuildReferenceIndex scans the record's citation list in a single pass.
// Malformed citation entries (no reference number and no PubMed id) are
// skipped and counted as a non-fatal diagnostic.
func BuildReferenceIndex(entry *uniprot.Entry, registry *links.Registry) *ReferenceIndex {
	idx := &ReferenceIndex{
		byNumber: make(map[int]*gene.CitationRef, len(entry.References)),
		byPubMed: make(map[string]*gene.CitationRef, len(entry.References)),
		registry: registry,
	}

	for _, ref := range entry.References {
		pubmedID := ""
		for _, xref := range ref.Citation.CrossReferences {
			if xref.Database == "PubMed" {
				pubmedID = xref.ID
				break
			}
		}

		if ref.ReferenceNumber == 0 && pubmedID == "" {
			idx.skipped++
			continue
		}

		citation := &gene.CitationRef{
			PubMedID: pubmedID,
			Title:    ref.Citation.Title,
		}
		if pubmedID != "" {
			citation.URL = registry.Resolve("PubMed", pubmedID, "")
		}

		if ref.ReferenceNumber != 0 {
			idx.byNumber[ref.ReferenceNumber] = citation
		}
		if pubmedID != "" {
			idx.byPubMed[pubmedID] = citation
		}
	}

	return idx
}

// Size returns the number of distinct citations indexed.
func (idx *ReferenceIndex) Size() int {
	if len(idx.byNumber) > len(idx.byPubMed) {
		return len(idx.byNumber)
	}
	return len(idx.byPubMed)
}

// Skipped returns the count of malformed citation entries dropped during the
// build pass.
func (idx *ReferenceIndex) Skipped() int {
	return idx.skipped
}

// ResolveEvidences maps a feature's evidence tags to unique citations.
// Evidence sources are either a database name with an id or an in-record
// citation pointer resolved through the reference-number index. Evidence
// pointing at an unindexed PubMed id still yields a minimal citation, so
// downstream consumers never lose the literature pointer. Citations without
// a PubMed id are omitted.
func (idx *ReferenceIndex) ResolveEvidences(evidences []uniprot.Evidence) []gene.CitationRef {
	var resolved []gene.CitationRef
	seen := make(map[string]bool)

	for _, ev := range evidences {
		var citation *gene.CitationRef

		switch {
		case ev.Source.ReferenceNumber != 0:
			citation = idx.byNumber[ev.Source.ReferenceNumber]
		case ev.Source.Name == "PubMed" && ev.ID != "":
			citation = idx.byPubMed[ev.ID]
			if citation == nil {
				citation = &gene.CitationRef{
					PubMedID: ev.ID,
					Title:    "PubMed Record " + ev.ID,
					URL:      idx.registry.Resolve("PubMed", ev.ID, ""),
				}
			}
		}

		if citation == nil || citation.PubMedID == "" || seen[citation.PubMedID] {
			continue
		}
		seen[citation.PubMedID] = true
		resolved = append(resolved, *citation)
	}

	return resolved
}
