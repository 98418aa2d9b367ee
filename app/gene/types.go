package gene

// Domain model for the canonical gene summary. Field names and nesting are
// the compatibility surface consumed by API clients; values are never
// mutated after assembly.

type ClinicalSignificance string

const (
	SignificancePathogenic  ClinicalSignificance = "pathogenic"
	SignificanceBenign      ClinicalSignificance = "benign"
	SignificanceUncertain   ClinicalSignificance = "uncertain"
	SignificanceUnspecified ClinicalSignificance = "unspecified"
)

type ModificationKind string

const (
	ModificationPhosphorylation ModificationKind = "phosphorylation"
	ModificationAcetylation     ModificationKind = "acetylation"
	ModificationMethylation     ModificationKind = "methylation"
	ModificationGlycosylation   ModificationKind = "glycosylation"
	ModificationUbiquitination  ModificationKind = "ubiquitination"
	ModificationSumoylation     ModificationKind = "sumoylation"
	ModificationOther           ModificationKind = "other"
)

type EvidenceLevel string

const (
	EvidenceExperimental EvidenceLevel = "experimental"
	EvidenceInferred     EvidenceLevel = "inferred"
	EvidenceUnspecified  EvidenceLevel = "unspecified"
)

type StructureMethod string

const (
	MethodXRay      StructureMethod = "X-ray"
	MethodNMR       StructureMethod = "NMR"
	MethodCryoEM    StructureMethod = "cryo-EM"
	MethodPredicted StructureMethod = "predicted"
)

type SourceKind string

const (
	SourceExperimental SourceKind = "experimental"
	SourcePredicted    SourceKind = "predicted"
)

// CitationRef is a resolved literature citation. Built once per record by the
// reference index and shared by every feature that cites it.
type CitationRef struct {
	PubMedID string `json:"pubmedId"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

type Identification struct {
	PrimaryGene      string   `json:"primaryGene"`
	Synonyms         []string `json:"synonyms"`
	AlternativeNames []string `json:"alternativeNames"`
	Length           int      `json:"length"`
}

type FunctionSubsection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Function struct {
	General     string               `json:"general"`
	Subsections []FunctionSubsection `json:"subsections"`
	References  []CitationRef        `json:"references"`
}

type Expression struct {
	TissueSpecificity  string `json:"tissueSpecificity"`
	DevelopmentalStage string `json:"developmentalStage"`
	Induction          string `json:"induction"`
}

// ModificationSite is a post-translational modification at a 1-based residue
// position within the owning protein's sequence.
type ModificationSite struct {
	Position      int              `json:"position"`
	Residue       string           `json:"residue"`
	Kind          ModificationKind `json:"kind"`
	Description   string           `json:"description"`
	EvidenceLevel EvidenceLevel    `json:"evidenceLevel"`
	Citations     []CitationRef    `json:"citations"`
}

type Variant struct {
	Position             int                  `json:"position"`
	OriginalResidue      string               `json:"originalResidue"`
	SubstitutedResidue   string               `json:"substitutedResidue"`
	Description          string               `json:"description"`
	Disease              string               `json:"disease"`
	ClinicalSignificance ClinicalSignificance `json:"clinicalSignificance"`
	Citations            []CitationRef        `json:"citations"`
}

type StructureRef struct {
	ID                 string          `json:"id"`
	Method             StructureMethod `json:"method"`
	ResolutionAngstrom *float64        `json:"resolutionAngstrom,omitempty"`
	SourceKind         SourceKind      `json:"sourceKind"`
	URL                string          `json:"url"`
}

type CrossReference struct {
	Database   string `json:"database"`
	ExternalID string `json:"externalId"`
	URL        string `json:"url"`
}

type Sequence struct {
	Length int    `json:"length"`
	Value  string `json:"value"`
}

// Summary is the canonical output of the normalization pipeline. Immutable
// after assembly and safe for concurrent reads.
type Summary struct {
	GeneSymbol      string             `json:"geneSymbol"`
	Accession       string             `json:"accession"`
	EntryStatus     string             `json:"entryStatus"`
	AnnotationScore float64            `json:"annotationScore"`
	Organism        string             `json:"organism"`
	Identification  Identification     `json:"identification"`
	Function        Function           `json:"function"`
	Expression      Expression         `json:"expression"`
	PTMDescription  string             `json:"ptmDescription"`
	PTMs            []ModificationSite `json:"ptms"`
	Variants        []Variant          `json:"variants"`
	Structures      []StructureRef     `json:"structures"`
	CrossReferences []CrossReference   `json:"crossReferences"`
	Sequence        Sequence           `json:"sequence"`
}
