package signor

// Interaction is a deduplicated signaling relation aggregated over the raw
// TSV rows sharing (entityA, entityB, effect, mechanism).
type Interaction struct {
	EntityA   string   `json:"entityA"`
	TypeA     string   `json:"typeA"`
	IDA       string   `json:"idA"`
	EntityB   string   `json:"entityB"`
	TypeB     string   `json:"typeB"`
	IDB       string   `json:"idB"`
	Effect    string   `json:"effect"`
	Mechanism string   `json:"mechanism"`
	Score     float64  `json:"score"`
	PMIDs     []string `json:"pmids"`
	Sentences []string `json:"sentences"`
	SignorID  string   `json:"signorId"`
}

// Modification is a residue-level modification where the queried protein is
// the target.
type Modification struct {
	Modifier  string `json:"modifier"`
	Residue   string `json:"residue"`
	Sequence  string `json:"sequence"`
	Effect    string `json:"effect"`
	Mechanism string `json:"mechanism"`
}

type Data struct {
	EntityName     string         `json:"entityName"`
	TotalRelations int            `json:"totalRelations"`
	Interactions   []Interaction  `json:"interactions"`
	Modifications  []Modification `json:"modifications"`
}

// row mirrors one line of the SIGNOR getData TSV.
type row struct {
	EntityA   string
	TypeA     string
	IDA       string
	EntityB   string
	TypeB     string
	IDB       string
	Effect    string
	Mechanism string
	Residue   string
	Sequence  string
	PMID      string
	Sentence  string
	SignorID  string
	Score     string
}
