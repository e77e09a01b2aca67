// Package validation cross-checks extracted medicine records against the
// reference catalog and guards untrusted input.
package validation

import (
	"strings"
	"time"

	"github.com/giygas/medlabel-api/catalog"
	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/interfaces"
	"github.com/giygas/medlabel-api/logging"
	"github.com/giygas/medlabel-api/metrics"
)

// Compile-time check to ensure MedicineValidatorImpl implements MedicineValidator
var _ interfaces.MedicineValidator = (*MedicineValidatorImpl)(nil)

// Messages placed in Suggestions.ExpiryDate. They are warnings, not dates.
const (
	ExpiredWarning     = "This medicine has expired. Expired medicines cannot be donated."
	InvalidDateWarning = "Expiry date is not a valid calendar date. Use the YYYY-MM-DD format."
)

// MedicineValidatorImpl implements the interfaces.MedicineValidator interface
type MedicineValidatorImpl struct {
	catalog interfaces.CatalogStore
	stats   interfaces.StatsStore
	now     func() time.Time
}

// ValidatorOption configures a MedicineValidatorImpl
type ValidatorOption func(*MedicineValidatorImpl)

// WithClock sets the source of "now" used for the expiry comparison
func WithClock(now func() time.Time) ValidatorOption {
	return func(v *MedicineValidatorImpl) { v.now = now }
}

// WithStats records each verdict outcome in stats
func WithStats(stats interfaces.StatsStore) ValidatorOption {
	return func(v *MedicineValidatorImpl) { v.stats = stats }
}

// NewMedicineValidator creates a validator backed by catalog
func NewMedicineValidator(catalog interfaces.CatalogStore, opts ...ValidatorOption) *MedicineValidatorImpl {
	v := &MedicineValidatorImpl{
		catalog: catalog,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks record against its catalog entry. Checks run in order and the
// first failing one decides the verdict:
//
//  1. a name not found in the catalog passes
//  2. an expiry date before today fails with a warning in Suggestions.ExpiryDate
//  3. a required ingredient not contained in any extracted ingredient fails with
//     the catalog's ingredient list and canonical name
//
// Because "today" is read at call time, the same record may flip from valid to
// expired between calls.
func (v *MedicineValidatorImpl) Validate(record entities.ExtractedRecord) entities.ValidationVerdict {
	verdict := v.evaluate(record)

	metrics.ValidationVerdictsTotal.WithLabelValues(string(verdict.Outcome)).Inc()
	if v.stats != nil {
		v.stats.RecordVerdict(verdict.Outcome)
	}

	return verdict
}

func (v *MedicineValidatorImpl) evaluate(record entities.ExtractedRecord) entities.ValidationVerdict {
	entry, found := v.catalog.Lookup(record.MedicineName)
	if !found {
		logging.Debug("Medicine not in catalog, accepting record", "medicine", record.MedicineName)
		return entities.ValidationVerdict{IsValid: true, Outcome: entities.OutcomeUnknownMedicine}
	}

	if record.ExpiryDate != "" {
		expiry, err := time.Parse(entities.ExpiryDateLayout, record.ExpiryDate)
		if err != nil {
			logging.Debug("Unparseable expiry date", "medicine", entry.Name, "expiry_date", record.ExpiryDate, "error", err)
			return entities.ValidationVerdict{
				IsValid:     false,
				Suggestions: &entities.Suggestions{ExpiryDate: InvalidDateWarning},
				Outcome:     entities.OutcomeInvalidExpiry,
			}
		}

		if expiry.Before(v.now()) {
			return entities.ValidationVerdict{
				IsValid:     false,
				Suggestions: &entities.Suggestions{ExpiryDate: ExpiredWarning},
				Outcome:     entities.OutcomeExpired,
			}
		}
	}

	if missing := missingIngredients(entry.RequiredIngredients, record.ActiveIngredients); len(missing) > 0 {
		logging.Debug("Record is missing required ingredients", "medicine", entry.Name, "missing", missing)
		return entities.ValidationVerdict{
			IsValid: false,
			Suggestions: &entities.Suggestions{
				MedicineName:      entry.Name,
				ActiveIngredients: entry.RequiredIngredients,
			},
			Outcome: entities.OutcomeMissingIngredients,
		}
	}

	return entities.ValidationVerdict{IsValid: true, Outcome: entities.OutcomeValid}
}

// missingIngredients returns the required ingredients that are not a
// case-insensitive substring of any extracted ingredient.
func missingIngredients(required, extracted []string) []string {
	folded := make([]string, len(extracted))
	for i, ing := range extracted {
		folded[i] = catalog.Fold(ing)
	}

	var missing []string
	for _, req := range required {
		needle := catalog.Fold(req)
		present := false
		for _, have := range folded {
			if strings.Contains(have, needle) {
				present = true
				break
			}
		}
		if !present {
			missing = append(missing, req)
		}
	}
	return missing
}
