package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/harwellgs/pocketsage/internal/common"
	"github.com/harwellgs/pocketsage/internal/model"
)

// SaveSession inserts or replaces the aggregator session for a user.
func (s *SQLiteStorage) SaveSession(ctx context.Context, session *model.Session) error {
	if session == nil {
		return common.ErrInvalidInput
	}
	if session.UserID == "" {
		return fmt.Errorf("%w: session user ID is required", common.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, access_token, item_id, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			access_token = excluded.access_token,
			item_id = excluded.item_id,
			updated_at = CURRENT_TIMESTAMP`,
		session.UserID, session.AccessToken, session.ItemID)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession fetches the aggregator session for a user.
func (s *SQLiteStorage) GetSession(ctx context.Context, userID string) (*model.Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user ID is required", common.ErrInvalidInput)
	}

	var session model.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, access_token, item_id FROM sessions WHERE user_id = ?`,
		userID).Scan(&session.UserID, &session.AccessToken, &session.ItemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}
