package normalize

import (
	"fmt"
	"strings"

	"github.com/lysyi3m/gene-comb/app/gene"
	"github.com/lysyi3m/gene-comb/app/uniprot"
)

// Assemble composes the canonical summary from the extracted parts. Pure
// function: no I/O, no side effects. A record without a primary gene symbol
// is not a valid summary and fails with gene.ErrMalformedRecord.
func Assemble(symbol string, entry *uniprot.Entry, idx *ReferenceIndex,
	sites []gene.ModificationSite, variants []gene.Variant,
	structures []gene.StructureRef, xrefs []gene.CrossReference) (*gene.Summary, error) {

	identification := extractIdentification(entry)
	if identification.PrimaryGene == "" {
		return nil, fmt.Errorf("entry %s has no primary gene name: %w", entry.PrimaryAccession, gene.ErrMalformedRecord)
	}

	organism := entry.Organism.ScientificName
	if organism == "" {
		organism = "Homo sapiens"
	}

	return &gene.Summary{
		GeneSymbol:      strings.ToUpper(symbol),
		Accession:       entry.PrimaryAccession,
		EntryStatus:     entry.EntryType,
		AnnotationScore: entry.AnnotationScore,
		Organism:        organism,
		Identification:  identification,
		Function:        extractFunction(entry, idx),
		Expression:      extractExpression(entry),
		PTMDescription:  extractPTMDescription(entry),
		PTMs:            sites,
		Variants:        variants,
		Structures:      structures,
		CrossReferences: xrefs,
		Sequence: gene.Sequence{
			Length: entry.Sequence.Length,
			Value:  entry.Sequence.Value,
		},
	}, nil
}

func extractIdentification(entry *uniprot.Entry) gene.Identification {
	var altNames []string
	for _, alt := range entry.ProteinDescription.AlternativeNames {
		if alt.FullName.Value != "" {
			altNames = append(altNames, alt.FullName.Value)
		}
	}

	primary := ""
	var synonyms []string
	for _, g := range entry.Genes {
		if primary == "" {
			primary = g.GeneName.Value
		}
		for _, syn := range g.Synonyms {
			if syn.Value != "" {
				synonyms = append(synonyms, syn.Value)
			}
		}
	}

	return gene.Identification{
		PrimaryGene:      primary,
		Synonyms:         synonyms,
		AlternativeNames: altNames,
		Length:           entry.Sequence.Length,
	}
}

func extractFunction(entry *uniprot.Entry, idx *ReferenceIndex) gene.Function {
	fn := gene.Function{}
	var locations []string
	seenNotes := make(map[string]bool)
	seenRefs := make(map[string]bool)

	for _, c := range entry.Comments {
		switch c.CommentType {
		case "FUNCTION":
			for _, t := range c.Texts {
				if t.Value == "" {
					continue
				}
				cleaned := cleanText(t.Value)
				if fn.General == "" {
					fn.General = cleaned
				} else if !seenNotes[cleaned] {
					fn.Subsections = append(fn.Subsections, gene.FunctionSubsection{Title: "Note", Content: cleaned})
					seenNotes[cleaned] = true
				}
				for _, citation := range idx.ResolveEvidences(t.Evidences) {
					if !seenRefs[citation.PubMedID] {
						fn.References = append(fn.References, citation)
						seenRefs[citation.PubMedID] = true
					}
				}
			}
		case "SUBCELLULAR LOCATION":
			for _, loc := range c.SubcellularLocations {
				if loc.Location.Value != "" && !contains(locations, loc.Location.Value) {
					locations = append(locations, loc.Location.Value)
				}
			}
		}
	}

	if len(locations) > 0 {
		fn.Subsections = append(fn.Subsections, gene.FunctionSubsection{
			Title:   "Subcellular Location",
			Content: strings.Join(locations, ", "),
		})
	}

	return fn
}

func extractExpression(entry *uniprot.Entry) gene.Expression {
	expr := gene.Expression{}

	for _, c := range entry.Comments {
		value := firstTextValue(c.Texts)
		if value == "" {
			continue
		}
		switch c.CommentType {
		case "TISSUE SPECIFICITY":
			expr.TissueSpecificity = cleanText(value)
		case "DEVELOPMENTAL STAGE":
			expr.DevelopmentalStage = cleanText(value)
		case "INDUCTION":
			expr.Induction = cleanText(value)
		}
	}

	return expr
}

func extractPTMDescription(entry *uniprot.Entry) string {
	for _, c := range entry.Comments {
		if c.CommentType != "PTM" {
			continue
		}
		var parts []string
		for _, t := range c.Texts {
			if t.Value != "" {
				parts = append(parts, cleanText(t.Value))
			}
		}
		return strings.Join(parts, " ")
	}
	return ""
}

func firstTextValue(texts []uniprot.EvidencedText) string {
	for _, t := range texts {
		if t.Value != "" {
			return t.Value
		}
	}
	return ""
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
