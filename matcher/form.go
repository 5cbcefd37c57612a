package matcher

import (
	"strings"

	"github.com/rxbridge/generics-api/catalog"
)

type formKeywords struct {
	form     catalog.Form
	keywords []string
}

// Categories are checked in declaration order and the first satisfied one
// wins.
var formTable = []formKeywords{
	{catalog.FormTablet, []string{"TAB", "TABLET"}},
	{catalog.FormCapsule, []string{"CAP", "CAPSULE"}},
	{catalog.FormInjection, []string{"INJ", "INJECTION"}},
	{catalog.FormSyrup, []string{"SYR", "SYRUP", "SUSP", "SUSPENSION"}},
	{catalog.FormTopical, []string{"CREAM", "OINTMENT", "GEL"}},
	{catalog.FormDrops, []string{"DROP", "DROPS"}},
	{catalog.FormPowder, []string{"POWDER", "SACHET"}},
	{catalog.FormInhaler, []string{"INHALER", "ROTACAP", "RESPULE"}},
}

// DetectForm derives the dosage-form category from a product name by
// substring membership against the keyword table. Names matching no
// category classify as OTHER; an empty name has no form at all.
func DetectForm(productName string) catalog.Form {
	if strings.TrimSpace(productName) == "" {
		return ""
	}

	upper := strings.ToUpper(productName)
	for _, fk := range formTable {
		for _, kw := range fk.keywords {
			if strings.Contains(upper, kw) {
				return fk.form
			}
		}
	}

	return catalog.FormOther
}
