package model

import (
	"encoding/json"
	"time"
)

// SampleTransaction is a raw transaction captured for UI display. It keeps
// the provider's fields untouched, including the original amount sign.
type SampleTransaction struct {
	Name     string  `json:"name"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Snapshot is a rolling-window summary of income, spending, and category
// totals. It is computed fresh per request and never persisted. Totals are
// magnitudes; the signed per-transaction view is a separate contract.
type Snapshot struct {
	Start          time.Time
	End            time.Time
	CategoryTotals map[CoreCategory]float64
	Sample         []SampleTransaction
	TotalIncome    float64
	TotalSpending  float64
}

// snapshotJSON is the wire shape of a Snapshot: a flat object with
// YYYY-MM-DD dates and all six category keys always present.
type snapshotJSON struct {
	StartDate             string                   `json:"startDate"`
	EndDate               string                   `json:"endDate"`
	CategoryTotals        map[CoreCategory]float64 `json:"categoryTotals"`
	Sample                []SampleTransaction      `json:"sampleTransactions"`
	TotalIncomeEstimate   float64                  `json:"totalIncomeEstimate"`
	TotalSpendingEstimate float64                  `json:"totalSpendingEstimate"`
}

// MarshalJSON serializes the snapshot with date-only bounds and zero-filled
// category totals for buckets that saw no spending.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	totals := make(map[CoreCategory]float64, len(CoreCategories()))
	for _, c := range CoreCategories() {
		totals[c] = s.CategoryTotals[c]
	}

	sample := s.Sample
	if sample == nil {
		sample = []SampleTransaction{}
	}

	return json.Marshal(snapshotJSON{
		StartDate:             s.Start.Format("2006-01-02"),
		EndDate:               s.End.Format("2006-01-02"),
		CategoryTotals:        totals,
		Sample:                sample,
		TotalIncomeEstimate:   s.TotalIncome,
		TotalSpendingEstimate: s.TotalSpending,
	})
}

// UnmarshalJSON restores a snapshot from its wire shape.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var wire snapshotJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	start, err := time.Parse("2006-01-02", wire.StartDate)
	if err != nil {
		return err
	}
	end, err := time.Parse("2006-01-02", wire.EndDate)
	if err != nil {
		return err
	}

	s.Start = start
	s.End = end
	s.CategoryTotals = wire.CategoryTotals
	s.Sample = wire.Sample
	s.TotalIncome = wire.TotalIncomeEstimate
	s.TotalSpending = wire.TotalSpendingEstimate
	return nil
}
