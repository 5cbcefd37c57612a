// Package matcher implements the name-matching engine: text normalization,
// active-ingredient (salt) extraction, dosage-form classification, edit
// distance similarity, tiered name resolution and branded/generic
// cross-referencing.
package matcher

import "strings"

// Dosage-form words collapse to their short forms so that "CROCIN TABLET"
// and "CROCIN TAB" normalize to the same string.
var formSynonyms = map[string]string{
	"TABLET":    "TAB",
	"CAPSULE":   "CAP",
	"INJECTION": "INJ",
	"SYRUP":     "SYR",
}

var parenStripper = strings.NewReplacer("(", "", ")", "")

// Normalize canonicalizes free text for comparison: uppercase, runs of
// whitespace collapsed to single spaces, parentheses stripped, whole-word
// dosage-form synonyms replaced, surrounding whitespace trimmed. Empty input
// normalizes to the empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.ToUpper(text)
	s = parenStripper.Replace(s)

	fields := strings.Fields(s)
	for i, f := range fields {
		if short, ok := formSynonyms[f]; ok {
			fields[i] = short
		}
	}

	return strings.Join(fields, " ")
}
