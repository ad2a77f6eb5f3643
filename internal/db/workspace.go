package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-variants/internal/types"
	"github.com/jonathan/resume-variants/internal/variant"
)

const (
	masterDocumentID = "master"
	activeVariantKey = "active_variant"
)

// SaveWorkspace replaces the stored master, variants and active selection
// with ws in one transaction
func (db *DB) SaveWorkspace(ctx context.Context, ws variant.Workspace) error {
	if ws.Master == nil {
		return fmt.Errorf("workspace has no master document")
	}
	master, err := json.Marshal(ws.Master)
	if err != nil {
		return fmt.Errorf("failed to marshal master document: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, body, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT (id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
			masterDocumentID, string(master), now,
		); err != nil {
			return fmt.Errorf("failed to save master document: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM variants`); err != nil {
			return fmt.Errorf("failed to clear variants: %w", err)
		}
		for i, v := range ws.Variants {
			body, err := json.Marshal(v)
			if err != nil {
				return fmt.Errorf("failed to marshal variant %s: %w", v.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO variants (id, position, name, created_at, body) VALUES (?, ?, ?, ?, ?)`,
				v.ID, i, v.Name, v.CreatedAt.UTC().Format(time.RFC3339Nano), string(body),
			); err != nil {
				return fmt.Errorf("failed to save variant %s: %w", v.ID, err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
			activeVariantKey, ws.ActiveID,
		); err != nil {
			return fmt.Errorf("failed to save active variant: %w", err)
		}
		return nil
	})
}

// LoadWorkspace reads the stored workspace. It returns nil, nil when no
// master document has been saved yet.
func (db *DB) LoadWorkspace(ctx context.Context) (*variant.Workspace, error) {
	var body string
	err := db.conn.QueryRowContext(ctx, `SELECT body FROM documents WHERE id = ?`, masterDocumentID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load master document: %w", err)
	}

	var master types.Document
	if err := json.Unmarshal([]byte(body), &master); err != nil {
		return nil, fmt.Errorf("failed to decode master document: %w", err)
	}
	ws := &variant.Workspace{Master: &master, Variants: []variant.Variant{}}

	rows, err := db.conn.QueryContext(ctx, `SELECT id, body FROM variants ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load variants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, vbody string
		if err := rows.Scan(&id, &vbody); err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		var v variant.Variant
		if err := json.Unmarshal([]byte(vbody), &v); err != nil {
			return nil, fmt.Errorf("failed to decode variant %s: %w", id, err)
		}
		ws.Variants = append(ws.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate variants: %w", err)
	}

	err = db.conn.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, activeVariantKey).Scan(&ws.ActiveID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load active variant: %w", err)
	}
	return ws, nil
}
