package entities

// CatalogEntry is one reference medicine known to the catalog.
type CatalogEntry struct {
	Name                string   `json:"name" yaml:"name"`
	RequiredIngredients []string `json:"requiredIngredients" yaml:"requiredIngredients"`
	CommonDosages       []string `json:"commonDosages" yaml:"commonDosages"`
}

// Clone returns a deep copy so callers can never mutate catalog state.
func (e CatalogEntry) Clone() CatalogEntry {
	return CatalogEntry{
		Name:                e.Name,
		RequiredIngredients: append([]string(nil), e.RequiredIngredients...),
		CommonDosages:       append([]string(nil), e.CommonDosages...),
	}
}
