package category

import (
	"math"
	"testing"

	"github.com/harwellgs/pocketsage/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeIncomeDetection(t *testing.T) {
	tests := []struct {
		name         string
		raw          model.RawTransaction
		expectedKind model.TransactionKind
	}{
		{
			name:         "payroll label with upstream negative sign",
			raw:          model.RawTransaction{PrimaryCategory: "PAYROLL", Name: "ACME CORP DIRECT DEP", Amount: -2500},
			expectedKind: model.KindIncome,
		},
		{
			name:         "income label",
			raw:          model.RawTransaction{PrimaryCategory: "Income", Name: "TRANSFER", Amount: 100},
			expectedKind: model.KindIncome,
		},
		{
			name:         "salary in description",
			raw:          model.RawTransaction{PrimaryCategory: "", Name: "MONTHLY SALARY", Amount: 4200},
			expectedKind: model.KindIncome,
		},
		{
			name:         "deposit in description",
			raw:          model.RawTransaction{Name: "MOBILE CHECK DEPOSIT", Amount: 75},
			expectedKind: model.KindIncome,
		},
		{
			name:         "ordinary purchase",
			raw:          model.RawTransaction{PrimaryCategory: "Groceries", Name: "WHOLE FOODS", Amount: 82.17},
			expectedKind: model.KindSpending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Normalize(tt.raw)
			assert.Equal(t, tt.expectedKind, tx.Kind)
			if tx.Kind == model.KindIncome {
				assert.GreaterOrEqual(t, tx.Amount, 0.0)
				assert.Empty(t, tx.Category)
			} else {
				assert.LessOrEqual(t, tx.Amount, 0.0)
				assert.NotEmpty(t, tx.Category)
			}
		})
	}
}

func TestNormalizeSignRederivation(t *testing.T) {
	t.Run("income magnitude from negative upstream amount", func(t *testing.T) {
		tx := Normalize(model.RawTransaction{PrimaryCategory: "PAYROLL", Name: "ACME CORP DIRECT DEP", Amount: -2500})
		assert.Equal(t, model.KindIncome, tx.Kind)
		assert.InDelta(t, 2500, tx.Amount, 0.0001)
	})

	t.Run("spending is negative regardless of upstream sign", func(t *testing.T) {
		positive := Normalize(model.RawTransaction{PrimaryCategory: "Restaurants", Name: "NOODLE BAR", Amount: 31.40})
		negative := Normalize(model.RawTransaction{PrimaryCategory: "Restaurants", Name: "NOODLE BAR", Amount: -31.40})
		assert.InDelta(t, -31.40, positive.Amount, 0.0001)
		assert.InDelta(t, -31.40, negative.Amount, 0.0001)
	})
}

func TestNormalizeMalformedInput(t *testing.T) {
	t.Run("zero value record", func(t *testing.T) {
		tx := Normalize(model.RawTransaction{})
		assert.Equal(t, model.KindSpending, tx.Kind)
		assert.Equal(t, model.CategoryOther, tx.Category)
		assert.InDelta(t, 0, tx.Amount, 0.0001)
	})

	t.Run("non-finite amount coerces to zero", func(t *testing.T) {
		tx := Normalize(model.RawTransaction{Name: "BROKEN FEED", Amount: math.NaN()})
		assert.InDelta(t, 0, tx.Amount, 0.0001)

		tx = Normalize(model.RawTransaction{Name: "BROKEN FEED", Amount: math.Inf(1)})
		assert.InDelta(t, 0, tx.Amount, 0.0001)
	})
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	raws := []model.RawTransaction{
		{ID: "a", Name: "FIRST", Amount: 1},
		{ID: "b", Name: "SECOND", Amount: 2},
		{ID: "c", Name: "THIRD", Amount: 3},
	}

	normalized := NormalizeAll(raws)
	assert.Len(t, normalized, 3)
	assert.Equal(t, "a", normalized[0].ID)
	assert.Equal(t, "b", normalized[1].ID)
	assert.Equal(t, "c", normalized[2].ID)
}
