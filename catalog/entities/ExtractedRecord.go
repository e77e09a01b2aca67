package entities

// ExpiryDateLayout is the calendar date format used for expiry dates (YYYY-MM-DD).
const ExpiryDateLayout = "2006-01-02"

// ExtractedRecord is a candidate medicine read from a label, either by an
// extractor or entered manually.
type ExtractedRecord struct {
	MedicineName      string   `json:"medicineName"`
	ExpiryDate        string   `json:"expiryDate"`
	ActiveIngredients []string `json:"activeIngredients"`
}
