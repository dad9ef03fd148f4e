package model

// Account represents a linked financial account at the aggregator.
type Account struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Subtype  string  `json:"subtype,omitempty"`
	Mask     string  `json:"mask,omitempty"`
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency,omitempty"`
}
