// Package validation screens user-supplied search input and reports on
// catalog data quality.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rxbridge/generics-api/interfaces"
)

const maxInputLength = 120

// Pre-compiled regex patterns for performance optimization
// Compiled once at package initialization and reused for all validations
var (
	// Input validation: alphanumeric + punctuation that appears in product
	// names (CROCIN 650, AMOXYCLAV 625, B-COMPLEX, 0.5% w/v)
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+%/']+$`)

	// Dangerous patterns as strings (faster than regex for simple substring matching)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "eval(", "expression(", "url(", "@import",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"--", "/*", "*/", "exec(", "execute(",
		// Command injection patterns
		"`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

// InputValidatorImpl implements the interfaces.InputValidator interface
type InputValidatorImpl struct{}

// NewInputValidator creates a new input validator
func NewInputValidator() interfaces.InputValidator {
	return &InputValidatorImpl{}
}

// ValidateInput checks a user-supplied search term for length, character
// set and known attack patterns.
func (v *InputValidatorImpl) ValidateInput(input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fmt.Errorf("input is empty")
	}

	if len(trimmed) > maxInputLength {
		return fmt.Errorf("input too long: %d characters (max %d)", len(trimmed), maxInputLength)
	}

	if !inputRegex.MatchString(trimmed) {
		return fmt.Errorf("input contains invalid characters")
	}

	lowered := strings.ToLower(trimmed)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowered, pattern) {
			return fmt.Errorf("input contains disallowed sequence")
		}
	}

	return nil
}
