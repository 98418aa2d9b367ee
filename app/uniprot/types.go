package uniprot

import "encoding/json"

// Typed projection of the UniProtKB search response. Only the shapes the
// normalization pipeline consumes are declared; unknown upstream additions
// are dropped during decoding rather than failing the fetch.

type SearchResponse struct {
	Results []Entry `json:"results"`
}

// Entry is the raw record for one UniProtKB entry. It is consumed once per
// normalization pass and discarded.
type Entry struct {
	PrimaryAccession   string             `json:"primaryAccession"`
	UniProtkbID        string             `json:"uniProtkbId"`
	EntryType          string             `json:"entryType"`
	AnnotationScore    float64            `json:"annotationScore"`
	Organism           Organism           `json:"organism"`
	ProteinDescription ProteinDescription `json:"proteinDescription"`
	Genes              []Gene             `json:"genes"`
	Comments           []Comment          `json:"comments"`
	Features           []Feature          `json:"features"`
	References         []Reference        `json:"references"`
	CrossReferences    []CrossReference   `json:"uniProtKBCrossReferences"`
	Sequence           Sequence           `json:"sequence"`
}

type Organism struct {
	ScientificName string `json:"scientificName"`
	TaxonID        int    `json:"taxonId"`
}

type ValueText struct {
	Value string `json:"value"`
}

type Name struct {
	FullName ValueText `json:"fullName"`
}

type ProteinDescription struct {
	RecommendedName  Name   `json:"recommendedName"`
	AlternativeNames []Name `json:"alternativeNames"`
}

type Gene struct {
	GeneName ValueText   `json:"geneName"`
	Synonyms []ValueText `json:"synonyms"`
}

type EvidencedText struct {
	Value     string     `json:"value"`
	Evidences []Evidence `json:"evidences"`
}

// EvidenceSource is either an external database name ("PubMed") or an
// in-record citation pointer ({"referenceNumber": 3}); UniProt emits both
// shapes.
type EvidenceSource struct {
	Name            string
	ReferenceNumber int
}

func (s *EvidenceSource) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Name)
	}
	var pointer struct {
		ReferenceNumber int `json:"referenceNumber"`
	}
	if err := json.Unmarshal(data, &pointer); err != nil {
		return err
	}
	s.ReferenceNumber = pointer.ReferenceNumber
	return nil
}

type Evidence struct {
	EvidenceCode string         `json:"evidenceCode"`
	Source       EvidenceSource `json:"source"`
	ID           string         `json:"id"`
}

type SubcellularLocation struct {
	Location ValueText `json:"location"`
}

type Comment struct {
	CommentType          string                `json:"commentType"`
	Texts                []EvidencedText       `json:"texts"`
	SubcellularLocations []SubcellularLocation `json:"subcellularLocations"`
}

type Location struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Position struct {
	Value int `json:"value"`
}

type AlternativeSequence struct {
	OriginalSequence     string   `json:"originalSequence"`
	AlternativeSequences []string `json:"alternativeSequences"`
}

type Feature struct {
	Type                string              `json:"type"`
	Location            Location            `json:"location"`
	Description         string              `json:"description"`
	Evidences           []Evidence          `json:"evidences"`
	AlternativeSequence AlternativeSequence `json:"alternativeSequence"`
}

type CitationCrossReference struct {
	Database string `json:"database"`
	ID       string `json:"id"`
}

type Citation struct {
	Title           string                   `json:"title"`
	CrossReferences []CitationCrossReference `json:"citationCrossReferences"`
}

type Reference struct {
	ReferenceNumber int      `json:"referenceNumber"`
	Citation        Citation `json:"citation"`
}

type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type CrossReference struct {
	Database   string     `json:"database"`
	ID         string     `json:"id"`
	Properties []Property `json:"properties"`
}

type Sequence struct {
	Length int    `json:"length"`
	Value  string `json:"value"`
}
