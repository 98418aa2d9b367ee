package links

// Template describes how to turn an external database identifier into a
// dereferenceable URL. The {id} placeholder is substituted with the raw
// identifier; {acc} with the entry's primary accession.
type Template struct {
	URL string `yaml:"url"`
}

type registryFile struct {
	Databases map[string]Template `yaml:"databases"`
}
