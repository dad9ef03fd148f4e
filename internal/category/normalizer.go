package category

import (
	"math"
	"strings"

	"github.com/harwellgs/pocketsage/internal/model"
)

// Income detection keyword sets. These are checked before bucket
// classification and independently of it.
var (
	incomeLabelKeywords = []string{"income", "payroll"}
	incomeNameKeywords  = []string{"payroll", "salary", "deposit"}
)

// IsIncome reports whether a transaction looks like an inflow based on its
// provider label and description. The upstream amount sign is deliberately
// not consulted: provider sign conventions vary and cannot be trusted.
func IsIncome(label, name string) bool {
	label = strings.ToLower(label)
	name = strings.ToLower(name)
	return containsAny(label, incomeLabelKeywords) || containsAny(name, incomeNameKeywords)
}

// Normalize converts a raw provider record into a sign-consistent domain
// transaction: income positive, spending negative. The sign is re-derived
// from classification rather than trusted from upstream. Missing or
// non-finite fields coerce to zero values; Normalize never fails.
func Normalize(raw model.RawTransaction) model.NormalizedTransaction {
	amount := raw.Amount
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	amount = math.Abs(amount)

	tx := model.NormalizedTransaction{
		ID:   raw.ID,
		Name: raw.Name,
		Date: raw.Date,
	}

	if IsIncome(raw.PrimaryCategory, raw.Name) {
		tx.Kind = model.KindIncome
		tx.Amount = amount
		return tx
	}

	tx.Kind = model.KindSpending
	tx.Amount = -amount
	tx.Category = Classify(raw.PrimaryCategory, raw.Name)
	return tx
}

// NormalizeAll normalizes a sequence of raw records, preserving input order.
// This backs the per-transaction listing contract, where amounts stay
// signed; aggregate totals use magnitudes instead.
func NormalizeAll(raws []model.RawTransaction) []model.NormalizedTransaction {
	normalized := make([]model.NormalizedTransaction, len(raws))
	for i, raw := range raws {
		normalized[i] = Normalize(raw)
	}
	return normalized
}
