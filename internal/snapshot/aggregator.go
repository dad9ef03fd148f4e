// Package snapshot aggregates a window of transactions into per-category
// spending totals and income/spending estimates.
package snapshot

import (
	"math"
	"time"

	"github.com/harwellgs/pocketsage/internal/category"
	"github.com/harwellgs/pocketsage/internal/model"
)

// SampleLimit caps the number of transactions captured for display.
const SampleLimit = 10

// Aggregate folds raw transactions into a Snapshot for the given window.
// Income magnitudes accumulate into TotalIncome; everything else accumulates
// into TotalSpending and the matching category bucket. The sample keeps the
// first transactions in input order with their raw upstream fields.
func Aggregate(txns []model.RawTransaction, start, end time.Time) model.Snapshot {
	snap := model.Snapshot{
		Start:          start,
		End:            end,
		CategoryTotals: make(map[model.CoreCategory]float64, len(model.CoreCategories())),
		Sample:         make([]model.SampleTransaction, 0, SampleLimit),
	}

	// Every category key is present even when unused.
	for _, c := range model.CoreCategories() {
		snap.CategoryTotals[c] = 0
	}

	for _, raw := range txns {
		amount := raw.Amount
		if math.IsNaN(amount) || math.IsInf(amount, 0) {
			amount = 0
		}
		magnitude := math.Abs(amount)

		if len(snap.Sample) < SampleLimit {
			snap.Sample = append(snap.Sample, model.SampleTransaction{
				Name:     raw.Name,
				Date:     raw.Date,
				Category: raw.PrimaryCategory,
				Amount:   amount,
			})
		}

		if category.IsIncome(raw.PrimaryCategory, raw.Name) {
			snap.TotalIncome += magnitude
			continue
		}

		snap.TotalSpending += magnitude
		snap.CategoryTotals[category.Classify(raw.PrimaryCategory, raw.Name)] += magnitude
	}

	return snap
}
