package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/harwellgs/pocketsage/internal/common"
	"github.com/harwellgs/pocketsage/internal/model"
)

// SaveBudgetState stores the user's budget state as JSON. The state is
// caller-owned free-form data; it round-trips through the permissive model
// decoding on the way back out.
func (s *SQLiteStorage) SaveBudgetState(ctx context.Context, userID string, state *model.BudgetState) error {
	if userID == "" {
		return fmt.Errorf("%w: user ID is required", common.ErrInvalidInput)
	}
	if state == nil {
		return common.ErrInvalidInput
	}

	encoded, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode budget state: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO budget_states (user_id, state, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			state = excluded.state,
			updated_at = CURRENT_TIMESTAMP`,
		userID, string(encoded))
	if err != nil {
		return fmt.Errorf("failed to save budget state: %w", err)
	}

	return nil
}

// GetBudgetState fetches the user's stored budget state.
func (s *SQLiteStorage) GetBudgetState(ctx context.Context, userID string) (*model.BudgetState, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", common.ErrInvalidInput)
	}

	var encoded string
	err := s.db.QueryRowContext(ctx, `
		SELECT state FROM budget_states WHERE user_id = ?`,
		userID).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget state: %w", err)
	}

	var state model.BudgetState
	if err := json.Unmarshal([]byte(encoded), &state); err != nil {
		return nil, fmt.Errorf("failed to decode budget state: %w", err)
	}

	return &state, nil
}
