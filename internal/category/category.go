// Package category tags line items with a coarse product category.
package category

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

// keywordSet is one category and the words that select it.
type keywordSet struct {
	category domain.Category
	re       *regexp.Regexp
}

func words(list ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(list, "|") + `)(?:s|es)?\b`)
}

// sets are checked in order. Supplies come first because supply names can
// contain drug-like words, e.g. "insulin syringe".
var sets = []keywordSet{
	{domain.CategoryMedicalSupplies, words(
		"syringe", "needle", "glove", "bandage", "swab", "gauze", "catheter",
		"cannula", "mask", "dressing", "suture", "plaster", "cotton", "tape",
		"gown", "ppe", "lancet", "test strip", "tubing", "drape", "scalpel", "blade",
		"giving set", "infusion set", "urine bag", "specimen container",
	)},
	{domain.CategoryMedicalEquipment, words(
		"thermometer", "monitor", "pump", "stethoscope", "oximeter",
		"sphygmomanometer", "nebuli[sz]er", "ventilator", "defibrillator",
		"glucometer", "scale", "device", "machine", "analy[sz]er",
		"concentrator", "ultrasound", "ecg", "autoclave", "otoscope", "laryngoscope",
	)},
	{domain.CategoryPharmaceuticals, regexp.MustCompile(`(?i)` +
		`\b(?:tab(?:let)?|cap(?:sule)?|injection|inj|syrup|suspension|cream|ointment|gel|drops?|` +
		`inhaler|vial|amp(?:oule|ule)?|suppositor(?:y|ies)|powder|solution|infusion|lotion|elixir|sachet)s?\b` +
		`|\d\s*(?:mg|ml|mcg|µg|μg|iu|g)\b|\d\s*%`)},
}

// Classify returns the category for a name and form. The first matching
// set wins; with no match the item is Medical Supplies.
func Classify(name, form string) domain.Category {
	text := name + " " + form
	for _, s := range sets {
		if s.re.MatchString(text) {
			return s.category
		}
	}
	return domain.CategoryMedicalSupplies
}

// ClassifyItem returns the category for a line item.
func ClassifyItem(item domain.LineItem) domain.Category {
	return Classify(item.Name+" "+item.Dosage, item.Form)
}
