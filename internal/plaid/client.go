// Package plaid provides a client for fetching transactions through the
// Plaid aggregator API.
package plaid

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/plaid/plaid-go/v20/plaid"

	"github.com/harwellgs/pocketsage/internal/common"
	"github.com/harwellgs/pocketsage/internal/model"
	"github.com/harwellgs/pocketsage/internal/service"
)

// Config holds Plaid API configuration.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
	AccessToken string
}

// Validate ensures the credentials needed to talk to the API are present.
// The access token is optional here: link-flow calls don't carry one.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: plaid client ID is required", common.ErrMissingConfig)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: plaid secret is required", common.ErrMissingConfig)
	}
	if c.Environment == "" {
		return fmt.Errorf("%w: plaid environment is required", common.ErrMissingConfig)
	}
	if c.Environment != "sandbox" && c.Environment != "production" {
		return fmt.Errorf("%w: plaid environment must be sandbox or production", common.ErrInvalidConfig)
	}
	return nil
}

// Client talks to the Plaid API on behalf of a single access token.
type Client struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	retryOpts   *service.RetryOptions
	accessToken string
	environment string
}

// NewClient creates a new Plaid client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &Client{
		client:      plaid.NewAPIClient(configuration),
		accessToken: cfg.AccessToken,
		environment: cfg.Environment,
		logger:      slog.Default().With("component", "plaid"),
		retryOpts: &service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 1 * time.Second,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// ForAccessToken returns a client bound to a different access token, sharing
// the underlying API client. Used by the server, where the token varies per
// user session.
func (c *Client) ForAccessToken(accessToken string) *Client {
	clone := *c
	clone.accessToken = accessToken
	return &clone
}

// GetTransactions fetches transactions from Plaid within the specified date range.
func (c *Client) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.RawTransaction, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}
	if c.accessToken == "" {
		return nil, common.ErrNoLinkedAccount
	}

	c.logger.Info("Fetching transactions from Plaid",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	var allTransactions []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // Plaid's max page size

	for {
		var plaidTransactions []plaid.Transaction

		retryErr := common.WithRetry(ctx, func() error {
			request := plaid.NewTransactionsGetRequest(
				c.accessToken,
				startDate.Format("2006-01-02"),
				endDate.Format("2006-01-02"),
			)
			options := plaid.TransactionsGetRequestOptions{
				Count:  plaid.PtrInt32(pageSize),
				Offset: plaid.PtrInt32(offset),
			}
			request.SetOptions(options)

			resp, _, err := c.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
			if err != nil {
				if plaidError := extractPlaidError(err); plaidError != nil {
					if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
						c.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
						return &common.RetryableError{Err: common.ErrPlaidRateLimit, Retryable: true}
					}
					return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
				}
				return fmt.Errorf("%w: %v", common.ErrPlaidConnection, err)
			}

			plaidTransactions = resp.GetTransactions()

			c.logger.Debug("Fetched transaction batch",
				"count", len(plaidTransactions),
				"offset", offset,
				"total", resp.GetTotalTransactions())

			return nil
		}, *c.retryOpts)

		if retryErr != nil {
			return nil, retryErr
		}

		allTransactions = append(allTransactions, plaidTransactions...)

		if len(plaidTransactions) < int(pageSize) {
			break
		}

		offset += pageSize
	}

	c.logger.Info("Fetched all transactions", "count", len(allTransactions))

	transactions := make([]model.RawTransaction, 0, len(allTransactions))
	for _, pt := range allTransactions {
		transactions = append(transactions, mapTransaction(pt))
	}

	return transactions, nil
}

// GetAccounts fetches the accounts linked to the client's access token.
func (c *Client) GetAccounts(ctx context.Context) ([]model.Account, error) {
	if c.accessToken == "" {
		return nil, common.ErrNoLinkedAccount
	}

	c.logger.Info("Fetching accounts from Plaid")

	var plaidAccounts []plaid.AccountBase
	retryErr := common.WithRetry(ctx, func() error {
		request := plaid.NewAccountsGetRequest(c.accessToken)
		resp, _, err := c.client.PlaidApi.AccountsGet(ctx).AccountsGetRequest(*request).Execute()
		if err != nil {
			if plaidError := extractPlaidError(err); plaidError != nil {
				if plaidError.ErrorCode == "RATE_LIMIT_EXCEEDED" {
					c.logger.Warn("Rate limit hit, will retry", "error", plaidError.ErrorMessage)
					return &common.RetryableError{Err: common.ErrPlaidRateLimit, Retryable: true}
				}
				return fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
			}
			return fmt.Errorf("%w: %v", common.ErrPlaidConnection, err)
		}

		plaidAccounts = resp.GetAccounts()
		return nil
	}, *c.retryOpts)

	if retryErr != nil {
		return nil, retryErr
	}

	c.logger.Info("Fetched accounts", "count", len(plaidAccounts))

	accounts := make([]model.Account, 0, len(plaidAccounts))
	for _, a := range plaidAccounts {
		account := model.Account{
			ID:      a.GetAccountId(),
			Name:    a.GetName(),
			Type:    string(a.GetType()),
			Subtype: string(a.GetSubtype()),
			Mask:    a.GetMask(),
		}
		balances := a.GetBalances()
		account.Balance = balances.GetCurrent()
		account.Currency = balances.GetIsoCurrencyCode()
		accounts = append(accounts, account)
	}

	return accounts, nil
}

// CreateLinkToken creates a Link token for Plaid Link initialization.
func (c *Client) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	user := plaid.LinkTokenCreateRequestUser{
		ClientUserId: userID,
	}

	request := plaid.NewLinkTokenCreateRequest(
		"PocketSage",
		"en",
		[]plaid.CountryCode{plaid.COUNTRYCODE_US},
		user,
	)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	resp, _, err := c.client.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		if plaidError := extractPlaidError(err); plaidError != nil {
			return "", fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
		}
		return "", fmt.Errorf("failed to create link token: %w", err)
	}

	return resp.GetLinkToken(), nil
}

// ExchangePublicToken exchanges a public token from Link for a persistent session.
func (c *Client) ExchangePublicToken(ctx context.Context, userID, publicToken string) (*model.Session, error) {
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := c.client.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		if plaidError := extractPlaidError(err); plaidError != nil {
			return nil, fmt.Errorf("plaid API error: %s - %s", plaidError.ErrorCode, plaidError.ErrorMessage)
		}
		return nil, fmt.Errorf("failed to exchange public token: %w", err)
	}

	return &model.Session{
		UserID:      userID,
		AccessToken: resp.GetAccessToken(),
		ItemID:      resp.GetItemId(),
	}, nil
}

// mapTransaction converts a Plaid transaction into the upstream wire shape
// the normalizer consumes. Upstream signs and labels pass through untouched.
func mapTransaction(pt plaid.Transaction) model.RawTransaction {
	name := pt.GetMerchantName()
	if name == "" {
		name = pt.GetName()
	}

	raw := model.RawTransaction{
		ID:       pt.GetTransactionId(),
		Name:     name,
		Date:     pt.GetDate(),
		Amount:   pt.GetAmount(),
		Currency: pt.GetIsoCurrencyCode(),
	}

	if pfc, ok := pt.GetPersonalFinanceCategoryOk(); ok {
		raw.PrimaryCategory = pfc.GetPrimary()
	}

	if categories := pt.GetCategory(); len(categories) > 0 {
		raw.Categories = categories
		if raw.PrimaryCategory == "" {
			raw.PrimaryCategory = categories[0]
		}
	}

	return raw
}

// extractPlaidError attempts to extract a Plaid error from a generic error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}

// Ensure Client satisfies the service contracts.
var (
	_ service.TransactionSource = (*Client)(nil)
	_ service.LinkProvider      = (*Client)(nil)
)
