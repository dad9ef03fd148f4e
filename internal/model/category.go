package model

// CoreCategory is one of the six fixed spending buckets used for budgeting
// display. The set is closed: income transactions never receive a category,
// and anything unrecognized falls back to CategoryOther.
type CoreCategory string

const (
	// CategoryHousing covers rent, mortgage, and utility payments.
	CategoryHousing CoreCategory = "Housing"
	// CategoryFoodDining covers groceries, restaurants, and fast food.
	CategoryFoodDining CoreCategory = "Food & Dining"
	// CategoryTransportation covers fuel, auto, and ride-share spending.
	CategoryTransportation CoreCategory = "Transportation"
	// CategoryHealthFitness covers medical, pharmacy, and gym spending.
	CategoryHealthFitness CoreCategory = "Health & Fitness"
	// CategoryLifestyle covers shopping, entertainment, and travel.
	CategoryLifestyle CoreCategory = "Lifestyle"
	// CategoryOther is the fallback bucket for unmatched spending.
	CategoryOther CoreCategory = "Other"
)

// CoreCategories returns every bucket in display order. Snapshot category
// totals carry all six keys even when a bucket saw no spending.
func CoreCategories() []CoreCategory {
	return []CoreCategory{
		CategoryHousing,
		CategoryFoodDining,
		CategoryTransportation,
		CategoryHealthFitness,
		CategoryLifestyle,
		CategoryOther,
	}
}
