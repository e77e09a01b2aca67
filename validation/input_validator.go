package validation

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/interfaces"
)

// Compile-time check to ensure InputValidatorImpl implements InputValidator
var _ interfaces.InputValidator = (*InputValidatorImpl)(nil)

// Limits applied to submitted records
const (
	MaxNameLength       = 200
	MaxIngredients      = 32
	MaxIngredientLength = 200
	MaxExpiryLength     = 32
)

var (
	ErrEmptyImage    = errors.New("image payload is empty")
	ErrNotAnImage    = errors.New("payload is not an image")
	ErrNilRecord     = errors.New("record is nil")
	ErrMissingName   = errors.New("medicineName is required")
	ErrInvalidString = errors.New("contains control characters or invalid UTF-8")
)

// Pre-compiled regex patterns, compiled once at package initialization
var (
	// Search input: letters in any script, digits and safe punctuation
	inputRegex = regexp.MustCompile(`^[\p{L}\p{N}\s\-\.\+'/%]+$`)

	// Dangerous patterns as strings (faster than regex for simple substring matching)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "import ", "@import", "binding(", "behavior(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "--", "/*", "*/", "xp_", "sp_", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
		// LDAP injection patterns
		"*)(", "*|(", "*)%",
		// NoSQL injection patterns
		"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
	}
)

// InputValidatorImpl implements the interfaces.InputValidator interface
type InputValidatorImpl struct{}

// NewInputValidator creates a new input validator
func NewInputValidator() interfaces.InputValidator {
	return &InputValidatorImpl{}
}

// ValidateInput validates user search strings such as catalog names
func (v *InputValidatorImpl) ValidateInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if len(input) < 3 {
		return fmt.Errorf("input too short: minimum 3 characters")
	}

	if len(input) > 50 {
		return fmt.Errorf("input too long: maximum 50 characters")
	}

	// Word count validation to prevent DoS attacks with many short words
	words := strings.Fields(input)
	if len(words) > 6 {
		return fmt.Errorf("search query too complex: maximum 6 words allowed")
	}

	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters. Only letters, numbers, spaces, hyphens, apostrophes, periods, slashes, percent and plus signs are allowed")
	}

	if hasExcessiveRepetition(input) {
		return fmt.Errorf("input contains excessive character repetition")
	}

	return nil
}

// ValidateRecord checks the shape of a submitted record before it reaches the
// medicine validator. It does not judge the medical content.
func (v *InputValidatorImpl) ValidateRecord(record *entities.ExtractedRecord) error {
	if record == nil {
		return ErrNilRecord
	}

	if strings.TrimSpace(record.MedicineName) == "" {
		return ErrMissingName
	}
	if len(record.MedicineName) > MaxNameLength {
		return fmt.Errorf("medicineName too long: %d characters, maximum %d", len(record.MedicineName), MaxNameLength)
	}
	if !isCleanString(record.MedicineName) {
		return fmt.Errorf("medicineName %w", ErrInvalidString)
	}

	if len(record.ExpiryDate) > MaxExpiryLength {
		return fmt.Errorf("expiryDate too long: %d characters, maximum %d", len(record.ExpiryDate), MaxExpiryLength)
	}
	if !isCleanString(record.ExpiryDate) {
		return fmt.Errorf("expiryDate %w", ErrInvalidString)
	}

	if len(record.ActiveIngredients) > MaxIngredients {
		return fmt.Errorf("too many activeIngredients: %d, maximum %d", len(record.ActiveIngredients), MaxIngredients)
	}
	for i, ing := range record.ActiveIngredients {
		if len(ing) > MaxIngredientLength {
			return fmt.Errorf("activeIngredients[%d] too long: %d characters, maximum %d", i, len(ing), MaxIngredientLength)
		}
		if !isCleanString(ing) {
			return fmt.Errorf("activeIngredients[%d] %w", i, ErrInvalidString)
		}
	}

	return nil
}

// ValidateImage sniffs payload and accepts only image content types
func (v *InputValidatorImpl) ValidateImage(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", ErrEmptyImage
	}

	contentType := http.DetectContentType(payload)
	if !strings.HasPrefix(contentType, "image/") {
		return contentType, fmt.Errorf("%w: detected %s", ErrNotAnImage, contentType)
	}

	return contentType, nil
}

func isCleanString(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// hasExcessiveRepetition checks for the same byte repeated more than 10 times consecutively
func hasExcessiveRepetition(input string) bool {
	for i := 0; i < len(input)-10; i++ {
		allSame := true
		for j := 1; j <= 10; j++ {
			if input[i] != input[i+j] {
				allSame = false
				break
			}
		}
		if allSame {
			return true
		}
	}
	return false
}
