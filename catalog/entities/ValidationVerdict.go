package entities

// VerdictOutcome classifies why a verdict was reached. It is not serialised.
type VerdictOutcome string

const (
	OutcomeValid              VerdictOutcome = "valid"
	OutcomeUnknownMedicine    VerdictOutcome = "unknown_medicine"
	OutcomeExpired            VerdictOutcome = "expired"
	OutcomeInvalidExpiry      VerdictOutcome = "invalid_expiry"
	OutcomeMissingIngredients VerdictOutcome = "missing_ingredients"
)

// Suggestions carries corrected fields for a rejected record.
// In the expiry branches ExpiryDate holds a warning message, not a date.
type Suggestions struct {
	MedicineName      string   `json:"medicineName,omitempty"`
	ExpiryDate        string   `json:"expiryDate,omitempty"`
	ActiveIngredients []string `json:"activeIngredients,omitempty"`
}

// ValidationVerdict is the validator's pass/fail outcome.
type ValidationVerdict struct {
	IsValid     bool           `json:"isValid"`
	Suggestions *Suggestions   `json:"suggestions,omitempty"`
	Outcome     VerdictOutcome `json:"-"`
}
