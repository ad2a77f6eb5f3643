package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-variants/internal/types"
)

// MatchRun is one stored relevance pass for a variant
type MatchRun struct {
	ID        int64
	VariantID string
	CreatedAt time.Time
	Response  types.MatchResponse
}

// SaveMatchRun records resp for variantID and returns the run id
func (db *DB) SaveMatchRun(ctx context.Context, variantID string, resp *types.MatchResponse) (int64, error) {
	body, err := json.Marshal(resp)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal match response: %w", err)
	}
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO match_runs (variant_id, created_at, tokens_used, response) VALUES (?, ?, ?, ?)`,
		variantID, time.Now().UTC().Format(time.RFC3339Nano), resp.TokensUsed, string(body),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save match run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read match run id: %w", err)
	}
	return id, nil
}

// LatestMatchRun returns the newest run for variantID, or nil when there is none
func (db *DB) LatestMatchRun(ctx context.Context, variantID string) (*MatchRun, error) {
	var (
		run     MatchRun
		created string
		body    string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, variant_id, created_at, response FROM match_runs
		 WHERE variant_id = ? ORDER BY id DESC LIMIT 1`, variantID,
	).Scan(&run.ID, &run.VariantID, &created, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match run: %w", err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("failed to parse match run time: %w", err)
	}
	if err := json.Unmarshal([]byte(body), &run.Response); err != nil {
		return nil, fmt.Errorf("failed to decode match run: %w", err)
	}
	return &run, nil
}

// DeleteMatchRuns drops the history of variantID, e.g. after the variant is deleted
func (db *DB) DeleteMatchRuns(ctx context.Context, variantID string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM match_runs WHERE variant_id = ?`, variantID); err != nil {
		return fmt.Errorf("failed to delete match runs: %w", err)
	}
	return nil
}
