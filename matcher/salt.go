package matcher

import (
	"strings"
	"unicode"
)

// Sentinels the source spreadsheets use for "no ingredient data". Compared
// case-sensitively after trimming.
var notApplicable = map[string]struct{}{
	"#N/A": {},
	"N/A":  {},
	"NA":   {},
}

func isNotApplicable(trimmed string) bool {
	_, ok := notApplicable[trimmed]
	return ok
}

func containsDigit(token string) bool {
	return strings.ContainsFunc(token, unicode.IsDigit)
}

// ExtractSalt derives the active-ingredient key from a raw contents string.
// Ingredient strings read "<NAME> <STRENGTH+UNIT>" (e.g. "PARACETAMOL
// 500MG"), so tokens accumulate left to right until the first token carrying
// a decimal digit, which marks the strength boundary. The result is joined
// with single spaces and uppercased. Empty input, the not-applicable
// sentinels, and strings whose first token is numeric all yield "".
func ExtractSalt(rawContents string) string {
	trimmed := strings.TrimSpace(rawContents)
	if trimmed == "" || isNotApplicable(trimmed) {
		return ""
	}

	var parts []string
	for _, token := range strings.Fields(trimmed) {
		if containsDigit(token) {
			break
		}
		parts = append(parts, token)
	}

	return strings.ToUpper(strings.Join(parts, " "))
}

// CleanContents returns the trimmed contents string with the not-applicable
// sentinels mapped to "". Unlike ExtractSalt it keeps the original casing
// and the strength suffix.
func CleanContents(rawContents string) string {
	trimmed := strings.TrimSpace(rawContents)
	if isNotApplicable(trimmed) {
		return ""
	}
	return trimmed
}
