package model

// RawTransaction is a bank transaction record exactly as supplied by the
// upstream financial-data aggregator. The amount keeps the provider's sign
// convention, which varies between sources and is treated as unreliable;
// normalization re-derives the sign from classification.
type RawTransaction struct {
	ID              string
	Name            string
	Date            string // ISO date (YYYY-MM-DD) as supplied by the provider
	PrimaryCategory string
	Currency        string
	Categories      []string // legacy provider taxonomy, broadest first
	Amount          float64
}

// TransactionKind separates inflows from outflows. Only these two values are
// ever produced; bills and recurring charges are not modeled.
type TransactionKind string

const (
	// KindIncome marks an inflow.
	KindIncome TransactionKind = "income"
	// KindSpending marks an outflow.
	KindSpending TransactionKind = "spending"
)

// NormalizedTransaction is a sign-consistent domain transaction: spending is
// negative, income is positive. Income transactions carry no category.
type NormalizedTransaction struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Date     string          `json:"date"`
	Kind     TransactionKind `json:"type"`
	Category CoreCategory    `json:"category,omitempty"`
	Amount   float64         `json:"amount"`
}

// Session holds a user's link to the upstream aggregator. Sessions are
// explicit and per-user; there is no process-wide "last token" state.
type Session struct {
	UserID      string
	AccessToken string
	ItemID      string
}
