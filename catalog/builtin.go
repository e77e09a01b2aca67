package catalog

import "github.com/giygas/medlabel-api/catalog/entities"

// builtinEntries is the reference table shipped with the binary.
var builtinEntries = []entities.CatalogEntry{
	{
		Name:                "Paracetamol",
		RequiredIngredients: []string{"Acetaminophen"},
		CommonDosages:       []string{"500mg", "650mg", "1000mg"},
	},
	{
		Name:                "Amoxicillin",
		RequiredIngredients: []string{"Amoxicillin Trihydrate"},
		CommonDosages:       []string{"250mg", "500mg", "875mg"},
	},
	{
		Name:                "Ibuprofen",
		RequiredIngredients: []string{"Ibuprofen"},
		CommonDosages:       []string{"200mg", "400mg", "600mg"},
	},
	{
		Name:                "Omeprazole",
		RequiredIngredients: []string{"Omeprazole"},
		CommonDosages:       []string{"10mg", "20mg", "40mg"},
	},
	{
		Name:                "Cetirizine",
		RequiredIngredients: []string{"Cetirizine Hydrochloride"},
		CommonDosages:       []string{"5mg", "10mg"},
	},
	{
		Name:                "Metformin",
		RequiredIngredients: []string{"Metformin Hydrochloride"},
		CommonDosages:       []string{"500mg", "850mg", "1000mg"},
	},
	{
		Name:                "Amoxicillin Clavulanate",
		RequiredIngredients: []string{"Amoxicillin Trihydrate", "Potassium Clavulanate"},
		CommonDosages:       []string{"500mg/125mg", "875mg/125mg"},
	},
	{
		Name:                "Loratadine",
		RequiredIngredients: []string{"Loratadine"},
		CommonDosages:       []string{"10mg"},
	},
}

// Default returns the built-in reference catalog.
func Default() *Catalog {
	return MustNew(builtinEntries)
}
