package normalize

import (
	"strings"

	"github.com/lysyi3m/gene-comb/app/gene"
	"github.com/lysyi3m/gene-comb/app/uniprot"
)

type featureCategory int

const (
	categoryIgnored featureCategory = iota
	categoryModification
	categoryVariant
)

// featureDispatch classifies raw feature types. Unrecognized types are
// ignored, not errored, so upstream schema additions degrade gracefully.
var featureDispatch = map[string]featureCategory{
	"Modified residue": categoryModification,
	"Natural variant":  categoryVariant,
}

// Diagnostics counts non-fatal drops observed during one normalization pass.
type Diagnostics struct {
	SkippedCitations int
	DroppedFeatures  int
	IgnoredFeatures  int
}

// ExtractFeatures walks the raw feature list once and partitions entries into
// modification sites and variants, resolving citations through the index.
// Output order matches the raw record's feature order. Entries missing a
// position, or positioned outside [1, sequence length], are dropped and
// counted.
func ExtractFeatures(entry *uniprot.Entry, idx *ReferenceIndex) ([]gene.ModificationSite, []gene.Variant, Diagnostics) {
	var sites []gene.ModificationSite
	var variants []gene.Variant
	diag := Diagnostics{SkippedCitations: idx.Skipped()}

	seqLen := entry.Sequence.Length

	for _, f := range entry.Features {
		category, ok := featureDispatch[f.Type]
		if !ok || category == categoryIgnored {
			diag.IgnoredFeatures++
			continue
		}

		pos := f.Location.Start.Value
		if pos < 1 || (seqLen > 0 && pos > seqLen) {
			diag.DroppedFeatures++
			continue
		}

		switch category {
		case categoryModification:
			sites = append(sites, gene.ModificationSite{
				Position:      pos,
				Residue:       residueFromDescription(f.Description),
				Kind:          modificationKind(f.Description),
				Description:   f.Description,
				EvidenceLevel: evidenceLevel(f.Evidences),
				Citations:     idx.ResolveEvidences(f.Evidences),
			})
		case categoryVariant:
			substituted := ""
			if len(f.AlternativeSequence.AlternativeSequences) > 0 {
				substituted = f.AlternativeSequence.AlternativeSequences[0]
			}
			variants = append(variants, gene.Variant{
				Position:             pos,
				OriginalResidue:      f.AlternativeSequence.OriginalSequence,
				SubstitutedResidue:   substituted,
				Description:          f.Description,
				Disease:              diseaseFromDescription(f.Description),
				ClinicalSignificance: clinicalSignificance(f.Description),
				Citations:            idx.ResolveEvidences(f.Evidences),
			})
		}
	}

	return sites, variants, diag
}

// residueFromDescription extracts the modified residue name, e.g.
// "Phosphoserine; by CK2" -> "Phosphoserine".
func residueFromDescription(description string) string {
	residue, _, _ := strings.Cut(description, ";")
	return strings.TrimSpace(residue)
}

var modificationPrefixes = []struct {
	prefix string
	kind   gene.ModificationKind
}{
	{"phospho", gene.ModificationPhosphorylation},
	{"acetyl", gene.ModificationAcetylation},
	{"methyl", gene.ModificationMethylation},
	{"glyco", gene.ModificationGlycosylation},
	{"ubiquit", gene.ModificationUbiquitination},
	{"glycyl lysine isopeptide", gene.ModificationUbiquitination},
	{"sumo", gene.ModificationSumoylation},
}

func modificationKind(description string) gene.ModificationKind {
	lower := strings.ToLower(description)
	for _, m := range modificationPrefixes {
		if strings.Contains(lower, m.prefix) {
			return m.kind
		}
	}
	return gene.ModificationOther
}

// clinicalSignificance parses the variant description. Absent or
// unrecognized annotations default to uncertain rather than being omitted.
func clinicalSignificance(description string) gene.ClinicalSignificance {
	lower := strings.ToLower(description)
	switch {
	case lower == "":
		return gene.SignificanceUncertain
	case strings.Contains(lower, "pathogenic") || strings.Contains(lower, "disease"):
		return gene.SignificancePathogenic
	case strings.Contains(lower, "benign") || strings.Contains(lower, "polymorphism"):
		return gene.SignificanceBenign
	case strings.Contains(lower, "uncertain"):
		return gene.SignificanceUncertain
	case strings.Contains(lower, "unclassified"):
		return gene.SignificanceUnspecified
	default:
		return gene.SignificanceUncertain
	}
}

// diseaseFromDescription extracts the disease fragment from annotations of
// the form "in BRCA1 carriers (in breast cancer; ...)".
func diseaseFromDescription(description string) string {
	if idx := strings.Index(description, "(in"); idx > 0 {
		return strings.TrimSpace(description[:idx])
	}
	return ""
}

// evidenceLevel derives a coarse evidence classification from ECO codes:
// ECO:0000269 marks experimental literature assertions, ECO:0000250/255
// similarity or sequence-model inference.
func evidenceLevel(evidences []uniprot.Evidence) gene.EvidenceLevel {
	level := gene.EvidenceUnspecified
	for _, ev := range evidences {
		switch ev.EvidenceCode {
		case "ECO:0000269":
			return gene.EvidenceExperimental
		case "ECO:0000250", "ECO:0000255":
			level = gene.EvidenceInferred
		}
	}
	return level
}
