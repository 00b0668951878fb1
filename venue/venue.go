// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package venue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickdraw/models"
)

var (
	ErrScopeNotFound = errors.New("scope not found")
	ErrScopeFrozen   = errors.New("scope is frozen")
)

// Venue is the adapter the draw engine consumes: it lists the qualifying
// actions submitted to a drawing's scope and closes the scope down when
// the drawing resolves.
type Venue interface {
	ListQualifyingEntries(ctx context.Context, scopeID string) ([]models.Entry, error)
	FreezeSubmissions(ctx context.Context, scopeID string) error
	ArchiveScope(ctx context.Context, scopeID string) error
}

// Tagger relabels a scope. Best-effort: callers log failures and move on.
type Tagger interface {
	Retag(ctx context.Context, scopeID, addTag, removeTag string) error
}

// SQLVenue implements Venue and Tagger over the scope/entry tables. In the
// original forum deployment these calls go to the host platform; here the
// service owns the tables itself.
type SQLVenue struct {
	db *sql.DB
}

func NewSQLVenue(db *sql.DB) *SQLVenue {
	return &SQLVenue{db: db}
}

// EnsureScope creates the scope row if it does not exist yet.
func (v *SQLVenue) EnsureScope(ctx context.Context, scopeID string) error {
	var id string
	err := v.db.QueryRowContext(ctx, `SELECT id FROM scope WHERE id = $1`, scopeID).Scan(&id)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to query scope: %w", err)
	}
	_, err = v.db.ExecContext(ctx, `
		INSERT INTO scope (id, frozen, archived, tag, created_at)
		VALUES ($1, 0, 0, '', $2)
	`, scopeID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to create scope: %w", err)
	}
	return nil
}

// GetScope loads one scope by id.
func (v *SQLVenue) GetScope(ctx context.Context, scopeID string) (*models.Scope, error) {
	var s models.Scope
	var frozen, archived int
	err := v.db.QueryRowContext(ctx, `
		SELECT id, frozen, archived, tag, created_at FROM scope WHERE id = $1
	`, scopeID).Scan(&s.ID, &frozen, &archived, &s.Tag, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrScopeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query scope: %w", err)
	}
	s.Frozen = frozen != 0
	s.Archived = archived != 0
	return &s, nil
}

// RecordEntry appends a qualifying entry to a scope, assigning the next
// sequence position. Position 1 is reserved for the organizer's opening
// entry, so the first recorded entry lands at position 2.
func (v *SQLVenue) RecordEntry(ctx context.Context, scopeID, entryID string, req models.RecordEntryRequest, at time.Time) (*models.Entry, error) {
	scope, err := v.GetScope(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	if scope.Frozen || scope.Archived {
		return nil, ErrScopeFrozen
	}

	tx, err := v.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position), 1) + 1 FROM entry WHERE scope_id = $1
	`, scopeID).Scan(&position)
	if err != nil {
		return nil, fmt.Errorf("failed to compute entry position: %w", err)
	}

	entry := &models.Entry{
		ID:           entryID,
		ScopeID:      scopeID,
		AuthorID:     req.AuthorID,
		AuthorName:   req.AuthorName,
		AuthorGroups: req.AuthorGroups,
		Position:     position,
		CreatedAt:    at.UTC(),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO entry (id, scope_id, author_id, author_name, author_groups,
			position, created_at, hidden, author_removed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, 0)
	`, entry.ID, entry.ScopeID, entry.AuthorID, entry.AuthorName, entry.AuthorGroups,
		entry.Position, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit entry: %w", err)
	}
	return entry, nil
}

// ListQualifyingEntries returns every entry after the opening one, in
// sequence order, with removal flags intact. Eligibility filtering happens
// in the engine, not here.
func (v *SQLVenue) ListQualifyingEntries(ctx context.Context, scopeID string) ([]models.Entry, error) {
	rows, err := v.db.QueryContext(ctx, `
		SELECT id, scope_id, author_id, author_name, author_groups,
		       position, created_at, hidden, author_removed
		FROM entry
		WHERE scope_id = $1 AND position > 1
		ORDER BY position
	`, scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		var e models.Entry
		var hidden, removed int
		if err := rows.Scan(&e.ID, &e.ScopeID, &e.AuthorID, &e.AuthorName, &e.AuthorGroups,
			&e.Position, &e.CreatedAt, &hidden, &removed); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		e.Hidden = hidden != 0
		e.AuthorRemoved = removed != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}
	return entries, nil
}

// FreezeSubmissions stops a scope from accepting further entries.
func (v *SQLVenue) FreezeSubmissions(ctx context.Context, scopeID string) error {
	return v.setFlag(ctx, scopeID, "frozen")
}

// ArchiveScope closes the scope for good once its drawing resolved.
func (v *SQLVenue) ArchiveScope(ctx context.Context, scopeID string) error {
	return v.setFlag(ctx, scopeID, "archived")
}

func (v *SQLVenue) setFlag(ctx context.Context, scopeID, column string) error {
	res, err := v.db.ExecContext(ctx, `UPDATE scope SET `+column+` = 1 WHERE id = $1`, scopeID)
	if err != nil {
		return fmt.Errorf("failed to set scope %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrScopeNotFound
	}
	return nil
}

// Retag replaces the scope's lifecycle tag. The removeTag argument exists
// for adapter compatibility; a scope carries one tag at a time here, so
// removal is implicit in the replacement.
func (v *SQLVenue) Retag(ctx context.Context, scopeID, addTag, removeTag string) error {
	res, err := v.db.ExecContext(ctx, `UPDATE scope SET tag = $1 WHERE id = $2`, addTag, scopeID)
	if err != nil {
		return fmt.Errorf("failed to retag scope: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrScopeNotFound
	}
	return nil
}

// HideEntry marks an entry as removed/hidden so it stops qualifying.
// Used by moderation tooling and tests.
func (v *SQLVenue) HideEntry(ctx context.Context, entryID string) error {
	_, err := v.db.ExecContext(ctx, `UPDATE entry SET hidden = 1 WHERE id = $1`, entryID)
	if err != nil {
		return fmt.Errorf("failed to hide entry: %w", err)
	}
	return nil
}
