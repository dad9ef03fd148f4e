package plaid

import (
	"context"
	"testing"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harwellgs/pocketsage/internal/model"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid sandbox config",
			config: Config{
				ClientID:    "client-id",
				Secret:      "secret",
				Environment: "sandbox",
			},
			wantErr: false,
		},
		{
			name: "valid production config",
			config: Config{
				ClientID:    "client-id",
				Secret:      "secret",
				Environment: "production",
			},
			wantErr: false,
		},
		{
			name: "missing client ID",
			config: Config{
				Secret:      "secret",
				Environment: "sandbox",
			},
			wantErr: true,
		},
		{
			name: "missing secret",
			config: Config{
				ClientID:    "client-id",
				Environment: "sandbox",
			},
			wantErr: true,
		},
		{
			name: "unknown environment",
			config: Config{
				ClientID:    "client-id",
				Secret:      "secret",
				Environment: "development",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:    "client-id",
		Secret:      "secret",
		Environment: "sandbox",
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestForAccessToken(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:    "client-id",
		Secret:      "secret",
		Environment: "sandbox",
	})
	require.NoError(t, err)

	bound := client.ForAccessToken("access-token-123")
	assert.Equal(t, "access-token-123", bound.accessToken)
	assert.Empty(t, client.accessToken)
	assert.Same(t, client.client, bound.client)
}

func TestMapTransaction(t *testing.T) {
	pt := plaid.Transaction{}
	pt.SetTransactionId("tx-1")
	pt.SetName("UBER *TRIP HELP.UBER.COM")
	pt.SetMerchantName("Uber")
	pt.SetDate("2024-02-14")
	pt.SetAmount(23.45)
	pt.SetIsoCurrencyCode("USD")
	pt.SetCategory([]string{"Travel", "Taxi"})

	pfc := plaid.PersonalFinanceCategory{}
	pfc.SetPrimary("TRANSPORTATION")
	pt.SetPersonalFinanceCategory(pfc)

	raw := mapTransaction(pt)

	assert.Equal(t, "tx-1", raw.ID)
	assert.Equal(t, "Uber", raw.Name)
	assert.Equal(t, "2024-02-14", raw.Date)
	assert.InDelta(t, 23.45, raw.Amount, 0.0001)
	assert.Equal(t, "USD", raw.Currency)
	assert.Equal(t, "TRANSPORTATION", raw.PrimaryCategory)
	assert.Equal(t, []string{"Travel", "Taxi"}, raw.Categories)
}

func TestMapTransactionLegacyCategoryFallback(t *testing.T) {
	pt := plaid.Transaction{}
	pt.SetTransactionId("tx-2")
	pt.SetName("LOCAL DINER")
	pt.SetDate("2024-02-14")
	pt.SetAmount(12)
	pt.SetCategory([]string{"Food and Drink", "Restaurants"})

	raw := mapTransaction(pt)

	assert.Equal(t, "LOCAL DINER", raw.Name)
	assert.Equal(t, "Food and Drink", raw.PrimaryCategory)
}

func TestMockSourceWindow(t *testing.T) {
	mock := &MockSource{
		Transactions: []model.RawTransaction{
			{ID: "a", Date: "2024-01-15", Amount: 10},
			{ID: "b", Date: "2024-02-15", Amount: 20},
			{ID: "c", Date: "2024-03-15", Amount: 30},
			{ID: "d", Date: "not-a-date", Amount: 40},
		},
	}

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)

	got, err := mock.GetTransactions(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}
