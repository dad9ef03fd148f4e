package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotMarshalJSON(t *testing.T) {
	t.Run("all six category keys are always present", func(t *testing.T) {
		snap := Snapshot{
			Start:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:            time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			CategoryTotals: map[CoreCategory]float64{CategoryHousing: 1200},
			TotalSpending:  1200,
		}

		data, err := json.Marshal(snap)
		require.NoError(t, err)

		var wire map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &wire))

		var totals map[string]float64
		require.NoError(t, json.Unmarshal(wire["categoryTotals"], &totals))
		assert.Len(t, totals, 6)
		for _, c := range CoreCategories() {
			_, ok := totals[string(c)]
			assert.True(t, ok, "missing category key %q", c)
		}
		assert.InDelta(t, 1200, totals[string(CategoryHousing)], 0.0001)
		assert.InDelta(t, 0, totals[string(CategoryLifestyle)], 0.0001)
	})

	t.Run("dates are date-only strings", func(t *testing.T) {
		snap := Snapshot{
			Start: time.Date(2024, 3, 1, 15, 4, 5, 0, time.UTC),
			End:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
		}

		data, err := json.Marshal(snap)
		require.NoError(t, err)

		var wire struct {
			StartDate string `json:"startDate"`
			EndDate   string `json:"endDate"`
		}
		require.NoError(t, json.Unmarshal(data, &wire))
		assert.Equal(t, "2024-03-01", wire.StartDate)
		assert.Equal(t, "2024-03-31", wire.EndDate)
	})

	t.Run("nil sample serializes as empty array", func(t *testing.T) {
		data, err := json.Marshal(Snapshot{Start: time.Now(), End: time.Now()})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"sampleTransactions":[]`)
	})

	t.Run("round trip", func(t *testing.T) {
		snap := Snapshot{
			Start:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			End:            time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			CategoryTotals: map[CoreCategory]float64{CategoryFoodDining: 321.5},
			Sample: []SampleTransaction{
				{Name: "Corner Cafe", Date: "2024-01-12", Category: "Food and Drink", Amount: 12.5},
			},
			TotalIncome:   5000,
			TotalSpending: 321.5,
		}

		data, err := json.Marshal(snap)
		require.NoError(t, err)

		var decoded Snapshot
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, snap.Start, decoded.Start)
		assert.Equal(t, snap.End, decoded.End)
		assert.InDelta(t, snap.TotalSpending, decoded.TotalSpending, 0.0001)
		assert.Equal(t, snap.Sample, decoded.Sample)
	})
}
