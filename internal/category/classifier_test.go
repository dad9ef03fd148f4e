package category

import (
	"testing"

	"github.com/harwellgs/pocketsage/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		txName   string
		expected model.CoreCategory
	}{
		{name: "rent label", label: "Rent", expected: model.CategoryHousing},
		{name: "mortgage label", label: "MORTGAGE PAYMENT", expected: model.CategoryHousing},
		{name: "utilities label", label: "Utilities", expected: model.CategoryHousing},
		{name: "home improvement", label: "Home Improvement", expected: model.CategoryHousing},
		{name: "restaurant label", label: "Restaurants", expected: model.CategoryFoodDining},
		{name: "groceries label", label: "Groceries", expected: model.CategoryFoodDining},
		{name: "fast food label", label: "Fast Food", expected: model.CategoryFoodDining},
		{name: "grill in name", txName: "SEASIDE BAR AND GRILL", expected: model.CategoryFoodDining},
		{name: "cafe in name", txName: "Blue Bottle Cafe", expected: model.CategoryFoodDining},
		{name: "gas label", label: "Gas Stations", expected: model.CategoryTransportation},
		{name: "ride share label", label: "Ride Share", expected: model.CategoryTransportation},
		{name: "uber in name", txName: "UBER *TRIP 8XK2", expected: model.CategoryTransportation},
		{name: "lyft in name", txName: "LYFT RIDE THU 9PM", expected: model.CategoryTransportation},
		{name: "pharmacy label", label: "Pharmacy", expected: model.CategoryHealthFitness},
		{name: "gym label", label: "Gym Membership", expected: model.CategoryHealthFitness},
		{name: "shopping label", label: "Shopping", expected: model.CategoryLifestyle},
		{name: "subscription label", label: "Subscription Services", expected: model.CategoryLifestyle},
		{name: "travel label", label: "Travel", expected: model.CategoryLifestyle},
		{name: "unknown label", label: "Wire Transfer", txName: "ACME WIRE", expected: model.CategoryOther},
		{name: "both empty", expected: model.CategoryOther},
		{name: "case insensitive", label: "rEnT", expected: model.CategoryHousing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.label, tt.txName))
		})
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	// Housing is checked before Food & Dining: a label matching both
	// resolves to the earlier group.
	assert.Equal(t, model.CategoryHousing, Classify("rent and food", ""))

	// Food & Dining beats Transportation when both match.
	assert.Equal(t, model.CategoryFoodDining, Classify("food and gas", ""))

	// A Lifestyle label with a food-looking name still resolves to the
	// name match, because groups are evaluated in order and Food & Dining
	// comes first.
	assert.Equal(t, model.CategoryFoodDining, Classify("travel", "AIRPORT CAFE"))
}

func TestClassifyIsDeterministic(t *testing.T) {
	first := Classify("Entertainment", "MOVIEPLEX 12")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Classify("Entertainment", "MOVIEPLEX 12"))
	}
}
