package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/harwellgs/pocketsage/internal/category"
	"github.com/harwellgs/pocketsage/internal/common"
	"github.com/harwellgs/pocketsage/internal/model"
	"github.com/harwellgs/pocketsage/internal/snapshot"
)

const (
	defaultSnapshotMonths  = 1
	defaultTransactionDays = 30
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		s.logger.Error("Request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	months := defaultSnapshotMonths
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 24 {
			s.writeError(w, http.StatusBadRequest, "months must be an integer between 1 and 24", err)
			return
		}
		months = n
	}

	session, err := s.store.GetSession(r.Context(), userID)
	if errors.Is(err, common.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "no linked account for user", nil)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load session", err)
		return
	}

	start, end := common.MonthsBack(s.now(), months)
	txns, err := s.sourceFor(session.AccessToken).GetTransactions(r.Context(), start, end)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "failed to fetch transactions", err)
		return
	}

	snap := snapshot.Aggregate(txns, start, end)
	writeJSON(w, http.StatusOK, &snap)
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	days := defaultTransactionDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 730 {
			s.writeError(w, http.StatusBadRequest, "days must be an integer between 1 and 730", err)
			return
		}
		days = n
	}

	session, err := s.store.GetSession(r.Context(), userID)
	if errors.Is(err, common.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "no linked account for user", nil)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to load session", err)
		return
	}

	start, end := common.DaysBack(s.now(), days)
	txns, err := s.sourceFor(session.AccessToken).GetTransactions(r.Context(), start, end)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "failed to fetch transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": category.NormalizeAll(txns)})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		s.writeError(w, http.StatusBadRequest, "user_id is required", nil)
		return
	}

	state, err := decodeBudgetState(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid input", err)
		return
	}

	var snap *model.Snapshot
	if r.URL.Query().Get("include_snapshot") == "true" {
		snap = s.buildSnapshot(r, userID)
	}

	resp, err := s.composer.ComposePlan(r.Context(), state, snap)
	if errors.Is(err, common.ErrInvalidInput) {
		s.writeError(w, http.StatusBadRequest, "invalid input", err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to compose plan", err)
		return
	}

	// Best effort: the plan succeeds even if persisting the state doesn't.
	if saveErr := s.store.SaveBudgetState(r.Context(), userID, state); saveErr != nil {
		s.logger.Warn("Failed to persist budget state", "user_id", userID, "error", saveErr)
	}

	writeJSON(w, http.StatusOK, resp)
}

// buildSnapshot fetches a one-month snapshot for the plan. Failures degrade
// to a plan without a snapshot.
func (s *Server) buildSnapshot(r *http.Request, userID string) *model.Snapshot {
	session, err := s.store.GetSession(r.Context(), userID)
	if err != nil {
		s.logger.Warn("Snapshot unavailable for plan", "user_id", userID, "error", err)
		return nil
	}

	start, end := common.MonthsBack(s.now(), defaultSnapshotMonths)
	txns, err := s.sourceFor(session.AccessToken).GetTransactions(r.Context(), start, end)
	if err != nil {
		s.logger.Warn("Snapshot unavailable for plan", "user_id", userID, "error", err)
		return nil
	}

	snap := snapshot.Aggregate(txns, start, end)
	return &snap
}

// decodeBudgetState decodes a request body into budget state. An absent,
// null, or non-object body is invalid input; malformed values inside a valid
// object coerce instead.
func decodeBudgetState(body io.Reader) (*model.BudgetState, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil, common.ErrInvalidInput
	}

	var state model.BudgetState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, common.ErrInvalidInput
	}

	return &state, nil
}

type linkTokenRequest struct {
	UserID string `json:"user_id"`
}

type linkExchangeRequest struct {
	UserID      string `json:"user_id"`
	PublicToken string `json:"public_token"`
}

func (s *Server) handleLinkToken(w http.ResponseWriter, r *http.Request) {
	if s.link == nil {
		s.writeError(w, http.StatusServiceUnavailable, "account linking is not configured", nil)
		return
	}

	var req linkTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		s.writeError(w, http.StatusBadRequest, "invalid input", err)
		return
	}

	token, err := s.link.CreateLinkToken(r.Context(), req.UserID)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "failed to create link token", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"link_token": token})
}

func (s *Server) handleLinkExchange(w http.ResponseWriter, r *http.Request) {
	if s.link == nil {
		s.writeError(w, http.StatusServiceUnavailable, "account linking is not configured", nil)
		return
	}

	var req linkExchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.PublicToken == "" {
		s.writeError(w, http.StatusBadRequest, "invalid input", err)
		return
	}

	session, err := s.link.ExchangePublicToken(r.Context(), req.UserID, req.PublicToken)
	if err != nil {
		s.writeError(w, http.StatusBadGateway, "failed to exchange public token", err)
		return
	}

	if err := s.store.SaveSession(r.Context(), session); err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to save session", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"item_id": session.ItemID})
}
