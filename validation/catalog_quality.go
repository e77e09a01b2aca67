package validation

import (
	"strings"
	"time"

	"github.com/giygas/medlabel-api/catalog"
	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/interfaces"
)

// ReportCatalogQuality audits catalog entries. Entries without ingredients always
// pass the ingredient check, so they are reported along with missing dosages
// and blank ingredient names. Ingredients shared by several entries are listed
// for information only.
func ReportCatalogQuality(entries []entities.CatalogEntry) *interfaces.CatalogQualityReport {
	report := &interfaces.CatalogQualityReport{
		EntriesWithoutIngredients: []string{},
		EntriesWithoutDosages:     []string{},
		BlankIngredients:          []string{},
		SharedIngredients:         map[string][]string{},
		GeneratedAt:               time.Now(),
	}

	// Folded ingredient -> first spelling seen, and the entries using it
	spelling := make(map[string]string)
	usedBy := make(map[string][]string)
	var order []string

	for _, entry := range entries {
		if len(entry.RequiredIngredients) == 0 {
			report.EntriesWithoutIngredients = append(report.EntriesWithoutIngredients, entry.Name)
		}
		if len(entry.CommonDosages) == 0 {
			report.EntriesWithoutDosages = append(report.EntriesWithoutDosages, entry.Name)
		}

		blank := false
		for _, ing := range entry.RequiredIngredients {
			if strings.TrimSpace(ing) == "" {
				blank = true
				continue
			}
			key := catalog.Fold(strings.TrimSpace(ing))
			if _, ok := spelling[key]; !ok {
				spelling[key] = ing
				order = append(order, key)
			}
			if names := usedBy[key]; len(names) == 0 || names[len(names)-1] != entry.Name {
				usedBy[key] = append(names, entry.Name)
			}
		}
		if blank {
			report.BlankIngredients = append(report.BlankIngredients, entry.Name)
		}
	}

	for _, key := range order {
		if names := usedBy[key]; len(names) > 1 {
			report.SharedIngredients[spelling[key]] = names
		}
	}

	return report
}
