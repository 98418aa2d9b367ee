package normalize

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lysyi3m/gene-comb/app/gene"
	"github.com/lysyi3m/gene-comb/app/uniprot"
)

func sampleEntry() *uniprot.Entry {
	return &uniprot.Entry{
		PrimaryAccession: "P04637",
		EntryType:        "UniProtKB reviewed (Swiss-Prot)",
		AnnotationScore:  5,
		Organism:         uniprot.Organism{ScientificName: "Homo sapiens", TaxonID: 9606},
		ProteinDescription: uniprot.ProteinDescription{
			RecommendedName:  uniprot.Name{FullName: uniprot.ValueText{Value: "Cellular tumor antigen p53"}},
			AlternativeNames: []uniprot.Name{{FullName: uniprot.ValueText{Value: "Tumor suppressor p53"}}},
		},
		Genes: []uniprot.Gene{
			{GeneName: uniprot.ValueText{Value: "TP53"}, Synonyms: []uniprot.ValueText{{Value: "P53"}}},
		},
		Comments: []uniprot.Comment{
			{CommentType: "FUNCTION", Texts: []uniprot.EvidencedText{
				{Value: "Acts as a tumor suppressor (PubMed:12345678). {ECO:0000269|PubMed:12345678}",
					Evidences: []uniprot.Evidence{{EvidenceCode: "ECO:0000269", Source: uniprot.EvidenceSource{Name: "PubMed"}, ID: "12345678"}}},
			}},
			{CommentType: "SUBCELLULAR LOCATION", SubcellularLocations: []uniprot.SubcellularLocation{
				{Location: uniprot.ValueText{Value: "Nucleus"}},
				{Location: uniprot.ValueText{Value: "Cytoplasm"}},
			}},
			{CommentType: "TISSUE SPECIFICITY", Texts: []uniprot.EvidencedText{{Value: "Ubiquitous. (PubMed:999)"}}},
		},
		Features: []uniprot.Feature{
			{Type: "Modified residue", Location: uniprot.Location{Start: uniprot.Position{Value: 15}}, Description: "Phosphoserine"},
			{Type: "Natural variant", Location: uniprot.Location{Start: uniprot.Position{Value: 72}},
				AlternativeSequence: uniprot.AlternativeSequence{OriginalSequence: "P", AlternativeSequences: []string{"R"}}},
		},
		References: []uniprot.Reference{
			{ReferenceNumber: 1, Citation: uniprot.Citation{Title: "p53 study", CrossReferences: []uniprot.CitationCrossReference{{Database: "PubMed", ID: "12345678"}}}},
		},
		CrossReferences: []uniprot.CrossReference{
			{Database: "PDB", ID: "1TUP", Properties: []uniprot.Property{{Key: "Method", Value: "X-ray"}, {Key: "Resolution", Value: "2.20 A"}}},
			{Database: "Reactome", ID: "R-HSA-69488"},
		},
		Sequence: uniprot.Sequence{Length: 393, Value: "MEEPQSDPSV"},
	}
}

func TestNormalizer_Run(t *testing.T) {
	normalizer := NewNormalizer(testRegistry(t))

	summary, err := normalizer.Run("tp53", sampleEntry())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.GeneSymbol != "TP53" {
		t.Errorf("Expected normalized symbol 'TP53', got '%s'", summary.GeneSymbol)
	}
	if summary.Accession != "P04637" {
		t.Errorf("Expected accession 'P04637', got '%s'", summary.Accession)
	}
	if summary.Identification.PrimaryGene != "TP53" {
		t.Errorf("Expected primary gene 'TP53', got '%s'", summary.Identification.PrimaryGene)
	}

	// Evidence tags are stripped from human-readable text
	if summary.Function.General != "Acts as a tumor suppressor." {
		t.Errorf("Expected cleaned function text, got '%s'", summary.Function.General)
	}
	if len(summary.Function.References) != 1 || summary.Function.References[0].PubMedID != "12345678" {
		t.Errorf("Expected one resolved function reference, got %+v", summary.Function.References)
	}

	if len(summary.Function.Subsections) != 1 {
		t.Fatalf("Expected 1 subsection, got %d", len(summary.Function.Subsections))
	}
	if summary.Function.Subsections[0].Content != "Nucleus, Cytoplasm" {
		t.Errorf("Expected joined locations, got '%s'", summary.Function.Subsections[0].Content)
	}

	if summary.Expression.TissueSpecificity != "Ubiquitous." {
		t.Errorf("Expected cleaned tissue specificity, got '%s'", summary.Expression.TissueSpecificity)
	}

	if len(summary.PTMs) != 1 || len(summary.Variants) != 1 {
		t.Errorf("Expected 1 PTM and 1 variant, got %d and %d", len(summary.PTMs), len(summary.Variants))
	}
	if summary.Variants[0].ClinicalSignificance != gene.SignificanceUncertain {
		t.Errorf("Expected uncertain significance for unannotated variant, got %s", summary.Variants[0].ClinicalSignificance)
	}

	if len(summary.Structures) != 2 {
		t.Errorf("Expected 2 structures, got %d", len(summary.Structures))
	}
	if len(summary.CrossReferences) != 1 {
		t.Errorf("Expected 1 cross-reference, got %d", len(summary.CrossReferences))
	}
	if summary.Sequence.Length != 393 {
		t.Errorf("Expected sequence length 393, got %d", summary.Sequence.Length)
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	normalizer := NewNormalizer(testRegistry(t))

	first, err := normalizer.Run("TP53", sampleEntry())
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	second, err := normalizer.Run("TP53", sampleEntry())
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected structurally identical summaries from repeated normalization")
	}
}

func TestAssemble_MissingIdentification(t *testing.T) {
	entry := sampleEntry()
	entry.Genes = nil

	normalizer := NewNormalizer(testRegistry(t))
	_, err := normalizer.Run("TP53", entry)

	if !errors.Is(err, gene.ErrMalformedRecord) {
		t.Errorf("Expected ErrMalformedRecord, got %v", err)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"Plain text", "Plain text"},
		{"Tagged (PubMed:123, PubMed:456) text", "Tagged text"},
		{"Curly {ECO:0000269|PubMed:123} tags", "Curly tags"},
		{"Square [PubMed:123] tags", "Square tags"},
		{"Paren (ECO:0000305) tags", "Paren tags"},
		{"Double  spaced   text", "Double spaced text"},
	}

	for _, tt := range tests {
		if got := cleanText(tt.input); got != tt.expected {
			t.Errorf("cleanText(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}
