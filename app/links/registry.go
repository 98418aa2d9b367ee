package links

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// genericTemplate resolves databases without a dedicated template. Unknown
// database kinds are preserved with this link rather than dropped.
const genericTemplate = "https://identifiers.org/{db}:{id}"

// defaultTemplates covers the databases the normalization pipeline emits
// links for out of the box. A YAML file may override or extend them.
var defaultTemplates = map[string]Template{
	"Bgee":            {URL: "https://bgee.org/gene/{id}"},
	"HPA":             {URL: "https://www.proteinatlas.org/{id}"},
	"ExpressionAtlas": {URL: "https://www.ebi.ac.uk/gxa/genes/{id}"},
	"Reactome":        {URL: "https://reactome.org/PathwayBrowser/#/{id}"},
	"SIGNOR":          {URL: "https://signor.uniroma2.it/relation_result.php?id={id}"},
	"InterPro":        {URL: "https://www.ebi.ac.uk/interpro/entry/InterPro/{id}/"},
	"Pfam":            {URL: "https://www.ebi.ac.uk/interpro/entry/pfam/{id}/"},
	"PDB":             {URL: "https://www.rcsb.org/structure/{id}"},
	"AlphaFoldDB":     {URL: "https://alphafold.ebi.ac.uk/entry/{acc}"},
	"PubMed":          {URL: "https://pubmed.ncbi.nlm.nih.gov/{id}/"},
}

// Registry resolves external database identifiers into canonical URLs.
type Registry struct {
	templates map[string]Template
}

// NewRegistry builds a registry from the embedded defaults, optionally
// overlaid with templates from a YAML file.
func NewRegistry(file string) (*Registry, error) {
	templates := make(map[string]Template, len(defaultTemplates))
	for db, tpl := range defaultTemplates {
		templates[db] = tpl
	}

	if file != "" {
		overrides, err := loadFile(file)
		if err != nil {
			return nil, err
		}
		for db, tpl := range overrides {
			templates[db] = tpl
		}
		slog.Debug("Link templates loaded", "file", file, "overrides", len(overrides))
	}

	return &Registry{templates: templates}, nil
}

// Resolve returns the canonical URL for a database identifier. Databases
// without a template resolve through the generic identifiers.org form.
func (r *Registry) Resolve(database, id, accession string) string {
	tpl, ok := r.templates[database]
	if !ok {
		tpl = Template{URL: genericTemplate}
	}

	url := tpl.URL
	url = strings.ReplaceAll(url, "{db}", strings.ToLower(database))
	url = strings.ReplaceAll(url, "{id}", id)
	url = strings.ReplaceAll(url, "{acc}", accession)
	return url
}

// Known reports whether a dedicated template exists for the database.
func (r *Registry) Known(database string) bool {
	_, ok := r.templates[database]
	return ok
}

func loadFile(file string) (map[string]Template, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read links file: %w", err)
	}

	var parsed registryFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse links file: %w", err)
	}

	for db, tpl := range parsed.Databases {
		if tpl.URL == "" {
			return nil, fmt.Errorf("invalid links file %s: database %s has no url", file, db)
		}
	}

	return parsed.Databases, nil
}
