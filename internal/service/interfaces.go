// Package service defines the interfaces that decouple the application's
// orchestration from its concrete integrations.
package service

import (
	"context"
	"time"

	"github.com/harwellgs/pocketsage/internal/model"
)

// TransactionSource fetches raw transactions from an upstream aggregator
// or file import.
type TransactionSource interface {
	// GetTransactions fetches transactions for the given inclusive date range.
	GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.RawTransaction, error)

	// GetAccounts fetches the linked accounts backing the source.
	GetAccounts(ctx context.Context) ([]model.Account, error)
}

// LinkProvider manages the account-linking handshake with the aggregator.
type LinkProvider interface {
	// CreateLinkToken creates a short-lived token used to start account linking.
	CreateLinkToken(ctx context.Context, userID string) (string, error)

	// ExchangePublicToken exchanges a public token for a persistent session.
	ExchangePublicToken(ctx context.Context, userID, publicToken string) (*model.Session, error)
}

// Narrator produces free-form narrative text for a prompt. Implementations
// wrap external language-model APIs.
type Narrator interface {
	Narrate(ctx context.Context, prompt string) (string, error)
}

// SessionStore persists per-user aggregator sessions and budget state.
type SessionStore interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, userID string) (*model.Session, error)
	SaveBudgetState(ctx context.Context, userID string, state *model.BudgetState) error
	GetBudgetState(ctx context.Context, userID string) (*model.BudgetState, error)
	Close() error
}

// SnapshotExporter writes a snapshot to an external destination.
type SnapshotExporter interface {
	Export(ctx context.Context, snapshot *model.Snapshot) (string, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
