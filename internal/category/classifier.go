// Package category maps noisy provider transaction labels onto the fixed
// set of core budget buckets and normalizes raw records into sign-consistent
// domain transactions.
package category

import (
	"strings"

	"github.com/harwellgs/pocketsage/internal/model"
)

// rule pairs keyword sets with the bucket they select. Label keywords match
// against the provider category label, name keywords against the free-text
// transaction description.
type rule struct {
	category      model.CoreCategory
	labelKeywords []string
	nameKeywords  []string
}

// rules is a priority-ordered decision list, evaluated top to bottom with
// first match winning. The order is a contract: a label containing both
// "rent" and "food" must resolve to Housing. Downstream consumers depend on
// these exact keyword sets, so changes here change category assignments.
var rules = []rule{
	{
		category:      model.CategoryHousing,
		labelKeywords: []string{"rent", "mortgage", "housing", "utilities", "home"},
	},
	{
		category:      model.CategoryFoodDining,
		labelKeywords: []string{"food", "restaurant", "dining", "groceries", "fast food"},
		nameKeywords:  []string{"grill", "cafe"},
	},
	{
		category:      model.CategoryTransportation,
		labelKeywords: []string{"transportation", "gas", "fuel", "auto", "ride share", "rideshare"},
		nameKeywords:  []string{"uber", "lyft"},
	},
	{
		category:      model.CategoryHealthFitness,
		labelKeywords: []string{"health", "medical", "pharmacy", "gym", "fitness"},
	},
	{
		category:      model.CategoryLifestyle,
		labelKeywords: []string{"shopping", "entertainment", "subscription", "travel", "recreation", "hobby"},
	},
}

// Classify maps a provider category label and transaction description to a
// core budget bucket. Matching is case-insensitive substring containment;
// absent inputs are treated as empty strings. Classify is total and
// deterministic: every input resolves to exactly one bucket, falling back
// to Other.
func Classify(label, name string) model.CoreCategory {
	label = strings.ToLower(label)
	name = strings.ToLower(name)

	for _, r := range rules {
		if containsAny(label, r.labelKeywords) || containsAny(name, r.nameKeywords) {
			return r.category
		}
	}

	return model.CategoryOther
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
