package normalize

import (
	"testing"

	"github.com/lysyi3m/gene-comb/app/gene"
	"github.com/lysyi3m/gene-comb/app/uniprot"
)

func TestExtractFeatures_Dispatch(t *testing.T) {
	entry := &uniprot.Entry{
		Sequence: uniprot.Sequence{Length: 100},
		Features: []uniprot.Feature{
			{Type: "Modified residue", Location: uniprot.Location{Start: uniprot.Position{Value: 5}}, Description: "Phosphoserine"},
			{Type: "Natural variant", Location: uniprot.Location{Start: uniprot.Position{Value: 10}},
				AlternativeSequence: uniprot.AlternativeSequence{OriginalSequence: "R", AlternativeSequences: []string{"Q"}}},
			{Type: "Helix", Location: uniprot.Location{Start: uniprot.Position{Value: 20}}},
			{Type: "Some future feature type", Location: uniprot.Location{Start: uniprot.Position{Value: 30}}},
		},
	}
	idx := BuildReferenceIndex(entry, testRegistry(t))

	sites, variants, diag := ExtractFeatures(entry, idx)

	if len(sites) != 1 {
		t.Errorf("Expected 1 modification site, got %d", len(sites))
	}
	if len(variants) != 1 {
		t.Errorf("Expected 1 variant, got %d", len(variants))
	}
	if diag.IgnoredFeatures != 2 {
		t.Errorf("Expected 2 ignored features, got %d", diag.IgnoredFeatures)
	}
	if diag.DroppedFeatures != 0 {
		t.Errorf("Expected 0 dropped features, got %d", diag.DroppedFeatures)
	}

	if variants[0].OriginalResidue != "R" || variants[0].SubstitutedResidue != "Q" {
		t.Errorf("Expected R->Q substitution, got %s->%s", variants[0].OriginalResidue, variants[0].SubstitutedResidue)
	}
}

func TestExtractFeatures_PositionBounds(t *testing.T) {
	entry := &uniprot.Entry{
		Sequence: uniprot.Sequence{Length: 50},
		Features: []uniprot.Feature{
			{Type: "Modified residue", Location: uniprot.Location{Start: uniprot.Position{Value: 1}}, Description: "Phosphoserine"},
			{Type: "Modified residue", Location: uniprot.Location{Start: uniprot.Position{Value: 50}}, Description: "Phosphothreonine"},
			{Type: "Modified residue", Location: uniprot.Location{Start: uniprot.Position{Value: 51}}, Description: "Out of range"},
			{Type: "Modified residue", Description: "Missing position"},
			{Type: "Natural variant", Location: uniprot.Location{Start: uniprot.Position{Value: 0}}},
		},
	}
	idx := BuildReferenceIndex(entry, testRegistry(t))

	sites, variants, diag := ExtractFeatures(entry, idx)

	if len(sites) != 2 {
		t.Errorf("Expected 2 in-bounds sites, got %d", len(sites))
	}
	if len(variants) != 0 {
		t.Errorf("Expected no variants, got %d", len(variants))
	}
	if diag.DroppedFeatures != 3 {
		t.Errorf("Expected 3 dropped features, got %d", diag.DroppedFeatures)
	}

	for _, site := range sites {
		if site.Position < 1 || site.Position > 50 {
			t.Errorf("Site position %d outside [1, 50]", site.Position)
		}
	}
}

func TestExtractFeatures_PreservesSourceOrder(t *testing.T) {
	entry := &uniprot.Entry{
		Sequence: uniprot.Sequence{Length: 100},
		Features: []uniprot.Feature{
			{Type: "Modified residue", Location: uniprot.Location{Start: uniprot.Position{Value: 90}}, Description: "Phosphoserine"},
			{Type: "Modified residue", Location: uniprot.Location{Start: uniprot.Position{Value: 10}}, Description: "Phosphothreonine"},
			{Type: "Modified residue", Location: uniprot.Location{Start: uniprot.Position{Value: 50}}, Description: "N6-acetyllysine"},
		},
	}
	idx := BuildReferenceIndex(entry, testRegistry(t))

	sites, _, _ := ExtractFeatures(entry, idx)

	expected := []int{90, 10, 50}
	for i, site := range sites {
		if site.Position != expected[i] {
			t.Errorf("Position %d: expected raw order %d, got %d", i, expected[i], site.Position)
		}
	}
}

func TestClinicalSignificance(t *testing.T) {
	tests := []struct {
		description string
		expected    gene.ClinicalSignificance
	}{
		{"", gene.SignificanceUncertain},
		{"in BRCA1 carriers (in breast cancer); pathogenic", gene.SignificancePathogenic},
		{"found in ovarian disease samples", gene.SignificancePathogenic},
		{"likely benign", gene.SignificanceBenign},
		{"common polymorphism", gene.SignificanceBenign},
		{"variant of uncertain significance", gene.SignificanceUncertain},
		{"unclassified variant", gene.SignificanceUnspecified},
		{"in dbSNP:rs12345", gene.SignificanceUncertain},
	}

	for _, tt := range tests {
		got := clinicalSignificance(tt.description)
		if got != tt.expected {
			t.Errorf("clinicalSignificance(%q): expected %s, got %s", tt.description, tt.expected, got)
		}
	}
}

func TestModificationKind(t *testing.T) {
	tests := []struct {
		description string
		expected    gene.ModificationKind
	}{
		{"Phosphoserine; by CK2", gene.ModificationPhosphorylation},
		{"N6-acetyllysine", gene.ModificationAcetylation},
		{"Omega-N-methylarginine", gene.ModificationMethylation},
		{"O-linked (GlcNAc) glycosylation", gene.ModificationGlycosylation},
		{"Ubiquitinated lysine", gene.ModificationUbiquitination},
		{"Sumoylated lysine", gene.ModificationSumoylation},
		{"ADP-ribosylglutamate", gene.ModificationOther},
	}

	for _, tt := range tests {
		got := modificationKind(tt.description)
		if got != tt.expected {
			t.Errorf("modificationKind(%q): expected %s, got %s", tt.description, tt.expected, got)
		}
	}
}

func TestEvidenceLevel(t *testing.T) {
	experimental := evidenceLevel([]uniprot.Evidence{
		{EvidenceCode: "ECO:0000250"},
		{EvidenceCode: "ECO:0000269"},
	})
	if experimental != gene.EvidenceExperimental {
		t.Errorf("Expected experimental, got %s", experimental)
	}

	inferred := evidenceLevel([]uniprot.Evidence{{EvidenceCode: "ECO:0000255"}})
	if inferred != gene.EvidenceInferred {
		t.Errorf("Expected inferred, got %s", inferred)
	}

	unspecified := evidenceLevel(nil)
	if unspecified != gene.EvidenceUnspecified {
		t.Errorf("Expected unspecified, got %s", unspecified)
	}
}
