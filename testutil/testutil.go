// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickdraw/auth"
	"github.com/danielhkuo/quickdraw/cliparse"
	"github.com/danielhkuo/quickdraw/db"
	"github.com/danielhkuo/quickdraw/models"
)

// SetupTestDB creates a fresh file-backed SQLite database with the full schema.
// The file lives in the test's temp dir and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "quickdraw_test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// a single connection avoids sqlite write contention in parallel handlers
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3319,
		DatabaseType:     "sqlite",
		OrganizerKeySalt: "test-organizer-salt",
		AdminToken:       "test-admin-token",
		Enabled:          true,
		MaxWinners:       20,
		MinParticipants:  2,
		LockDelayMinutes: 30,
		DrawInterval:     time.Minute,
		LockInterval:     5 * time.Minute,
	}
}

// CreateTestScope inserts a scope row and returns its ID.
func CreateTestScope(t *testing.T, conn *sql.DB, scopeID string) string {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO scope (id, frozen, archived, tag, created_at)
		VALUES ($1, 0, 0, '', $2)
	`, scopeID, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test scope: %v", err)
	}
	return scopeID
}

// AddTestEntry inserts an entry row at the given position and returns its ID.
func AddTestEntry(t *testing.T, conn *sql.DB, scopeID, authorID string, position int) string {
	t.Helper()

	entryID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO entry (id, scope_id, author_id, author_name, author_groups,
			position, hidden, author_removed, created_at)
		VALUES ($1, $2, $3, $4, '', $5, 0, 0, $6)
	`, entryID, scopeID, authorID, authorID, position, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test entry: %v", err)
	}
	return entryID
}

// DrawingOpts tweaks the defaults of CreateTestDrawing.
type DrawingOpts struct {
	Status            string // default "open"
	Locked            bool
	SelectionRule     string // default random
	SpecificPositions string
	WinnerCount       int       // default 2
	MinParticipants   int       // default 2
	BackupPolicy      string    // default cancel
	DrawTime          time.Time // default one hour out
	CreatedAt         time.Time // default now
}

// CreateTestDrawing inserts a drawing tied to scopeID and returns its ID and
// organizer key. Zero-valued fields in opts fall back to a plausible open
// random drawing.
func CreateTestDrawing(t *testing.T, conn *sql.DB, cfg cliparse.Config, scopeID string, opts DrawingOpts) (drawingID, organizerKey string) {
	t.Helper()

	drawingID, _ = auth.GenerateID(16)
	organizerKey = auth.GenerateOrganizerKey(drawingID, cfg.OrganizerKeySalt)

	now := time.Now().UTC()
	if opts.Status == "" {
		opts.Status = models.StatusOpen
	}
	if opts.SelectionRule == "" {
		opts.SelectionRule = models.RuleRandom
	}
	if opts.WinnerCount == 0 {
		opts.WinnerCount = 2
	}
	if opts.MinParticipants == 0 {
		opts.MinParticipants = 2
	}
	if opts.BackupPolicy == "" {
		opts.BackupPolicy = models.BackupCancel
	}
	if opts.DrawTime.IsZero() {
		opts.DrawTime = now.Add(time.Hour)
	}
	if opts.CreatedAt.IsZero() {
		opts.CreatedAt = now
	}

	var lockedAt *time.Time
	locked := 0
	if opts.Locked {
		locked = 1
		lockedAt = &now
	}

	_, err := conn.Exec(`
		INSERT INTO drawing (id, scope_id, organizer_id, organizer_name, name,
			prize_description, prize_image_url, description, draw_time, winner_count,
			specific_positions, min_participants, backup_policy, selection_rule,
			status, locked, locked_at, created_at, updated_at)
		VALUES ($1, $2, 'organizer-1', 'Organizer', 'Test Drawing',
			'A test prize', '', '', $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, drawingID, scopeID, opts.DrawTime.UTC(), opts.WinnerCount,
		opts.SpecificPositions, opts.MinParticipants, opts.BackupPolicy, opts.SelectionRule,
		opts.Status, locked, lockedAt, opts.CreatedAt.UTC(), now)
	if err != nil {
		t.Fatalf("Failed to create test drawing: %v", err)
	}

	return drawingID, organizerKey
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
