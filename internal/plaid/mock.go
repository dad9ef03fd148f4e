package plaid

import (
	"context"
	"time"

	"github.com/harwellgs/pocketsage/internal/model"
	"github.com/harwellgs/pocketsage/internal/service"
)

// MockSource is an in-memory TransactionSource for tests and offline demos.
type MockSource struct {
	Transactions []model.RawTransaction
	Accounts     []model.Account
	Err          error
}

// GetTransactions returns the canned transactions whose dates fall inside
// the inclusive window.
func (m *MockSource) GetTransactions(_ context.Context, startDate, endDate time.Time) ([]model.RawTransaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	var out []model.RawTransaction
	for _, tx := range m.Transactions {
		date, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			continue
		}
		if date.Before(startDate) || date.After(endDate) {
			continue
		}
		out = append(out, tx)
	}

	return out, nil
}

// GetAccounts returns the canned accounts.
func (m *MockSource) GetAccounts(_ context.Context) ([]model.Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Accounts, nil
}

var _ service.TransactionSource = (*MockSource)(nil)
