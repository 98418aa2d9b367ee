package normalize

import (
	"strconv"
	"strings"

	"github.com/lysyi3m/gene-comb/app/gene"
	"github.com/lysyi3m/gene-comb/app/links"
	"github.com/lysyi3m/gene-comb/app/uniprot"
)

// ResolveCrossReferences maps the record's raw database identifiers into
// canonical links and structure references. PDB entries become experimental
// structures in source order; the AlphaFold model is synthesized from the
// primary accession rather than parsed from a raw list entry, since the
// predicted-structure link is derivable from identifiers alone.
func ResolveCrossReferences(entry *uniprot.Entry, registry *links.Registry) ([]gene.CrossReference, []gene.StructureRef) {
	var xrefs []gene.CrossReference
	var structures []gene.StructureRef

	for _, raw := range entry.CrossReferences {
		if raw.ID == "" {
			continue
		}

		if raw.Database == "PDB" {
			structures = append(structures, resolveStructure(raw, registry))
			continue
		}

		xrefs = append(xrefs, gene.CrossReference{
			Database:   raw.Database,
			ExternalID: raw.ID,
			URL:        registry.Resolve(raw.Database, raw.ID, entry.PrimaryAccession),
		})
	}

	if entry.PrimaryAccession != "" {
		structures = append(structures, gene.StructureRef{
			ID:         entry.PrimaryAccession,
			Method:     gene.MethodPredicted,
			SourceKind: gene.SourcePredicted,
			URL:        registry.Resolve("AlphaFoldDB", entry.PrimaryAccession, entry.PrimaryAccession),
		})
	}

	return xrefs, structures
}

func resolveStructure(raw uniprot.CrossReference, registry *links.Registry) gene.StructureRef {
	ref := gene.StructureRef{
		ID:         raw.ID,
		Method:     gene.MethodXRay,
		SourceKind: gene.SourceExperimental,
		URL:        registry.Resolve("PDB", raw.ID, ""),
	}

	for _, prop := range raw.Properties {
		switch prop.Key {
		case "Method":
			ref.Method = structureMethod(prop.Value)
		case "Resolution":
			ref.ResolutionAngstrom = parseResolution(prop.Value)
		}
	}

	return ref
}

func structureMethod(raw string) gene.StructureMethod {
	switch strings.ToUpper(raw) {
	case "X-RAY":
		return gene.MethodXRay
	case "NMR":
		return gene.MethodNMR
	case "EM":
		return gene.MethodCryoEM
	default:
		return gene.MethodXRay
	}
}

// parseResolution handles values like "2.50 A"; "N/A" and unparseable
// values stay absent.
func parseResolution(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "N/A" {
		return nil
	}

	numeric, _, _ := strings.Cut(raw, " ")
	value, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return nil
	}
	return &value
}
