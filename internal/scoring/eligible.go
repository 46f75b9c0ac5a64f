package scoring

import (
	"strings"

	"github.com/custodia-labs/medrfq/internal/core/domain"
)

var (
	medicineTags = []string{"pharmaceuticals", "generic drugs", "biologics"}
	deviceTags   = []string{"medical devices", "medical supplies"}
)

// Eligible returns the vendors whose primary categories or specialization
// tags name a medical product line. When category is set the result is
// narrowed to vendors serving it, unless that leaves nothing.
func Eligible(vendors []domain.VendorRecord, category domain.Category) []domain.VendorRecord {
	all := []domain.VendorRecord{}
	for _, v := range vendors {
		if serves(v, medicineTags) || serves(v, deviceTags) {
			all = append(all, v)
		}
	}

	var want []string
	switch category {
	case domain.CategoryPharmaceuticals:
		want = medicineTags
	case domain.CategoryMedicalSupplies, domain.CategoryMedicalEquipment:
		want = deviceTags
	default:
		return all
	}

	narrowed := []domain.VendorRecord{}
	for _, v := range all {
		if serves(v, want) {
			narrowed = append(narrowed, v)
		}
	}
	if len(narrowed) == 0 {
		return all
	}
	return narrowed
}

func serves(v domain.VendorRecord, tags []string) bool {
	for _, group := range [][]string{v.PrimaryCategories, v.SpecializationTags} {
		for _, have := range group {
			have = strings.ToLower(strings.TrimSpace(have))
			for _, t := range tags {
				if have == t {
					return true
				}
			}
		}
	}
	return false
}
