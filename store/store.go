// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/quickdraw/models"
)

// ErrNotFound is returned when a drawing id is unknown.
var ErrNotFound = errors.New("drawing not found")

// Store owns all SQL for drawings and participants. Every terminal status
// transition is a guarded update (WHERE status = 'open'); callers learn from
// the applied result whether they won or lost a race.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const drawingColumns = `id, scope_id, organizer_id, organizer_name, name, prize_description,
	prize_image_url, description, draw_time, winner_count, specific_positions,
	min_participants, backup_policy, selection_rule, status, locked, locked_at,
	cancellation_reason, created_at, updated_at`

// CreateDrawing inserts a new open drawing.
func (s *Store) CreateDrawing(ctx context.Context, d *models.Drawing) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drawing (id, scope_id, organizer_id, organizer_name, name,
			prize_description, prize_image_url, description, draw_time, winner_count,
			specific_positions, min_participants, backup_policy, selection_rule,
			status, locked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`, d.ID, d.ScopeID, d.OrganizerID, d.OrganizerName, d.Name,
		d.PrizeDescription, d.PrizeImageURL, d.Description, d.DrawTime.UTC(), d.WinnerCount,
		d.SpecificPositions, d.MinParticipants, d.BackupPolicy, d.SelectionRule,
		d.Status, boolToInt(d.Locked), d.CreatedAt.UTC(), d.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert drawing: %w", err)
	}
	return nil
}

// GetDrawing loads one drawing by id.
func (s *Store) GetDrawing(ctx context.Context, id string) (*models.Drawing, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+drawingColumns+`
		FROM drawing
		WHERE id = $1
	`, id)
	return scanDrawing(row)
}

// UpdateDrawingConfig replaces the editable configuration of an open,
// unlocked drawing. Returns false if the drawing was not in an editable
// state anymore (lost race or already terminal).
func (s *Store) UpdateDrawingConfig(ctx context.Context, d *models.Drawing) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE drawing
		SET name = $1, prize_description = $2, prize_image_url = $3, description = $4,
		    draw_time = $5, winner_count = $6, specific_positions = $7,
		    min_participants = $8, backup_policy = $9, selection_rule = $10,
		    updated_at = $11
		WHERE id = $12 AND status = 'open' AND locked = 0
	`, d.Name, d.PrizeDescription, d.PrizeImageURL, d.Description,
		d.DrawTime.UTC(), d.WinnerCount, d.SpecificPositions,
		d.MinParticipants, d.BackupPolicy, d.SelectionRule,
		time.Now().UTC(), d.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update drawing: %w", err)
	}
	return applied(res)
}

// ListDueDrawings returns open drawings whose draw time has passed.
func (s *Store) ListDueDrawings(ctx context.Context, now time.Time) ([]models.Drawing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+drawingColumns+`
		FROM drawing
		WHERE status = 'open' AND draw_time <= $1
		ORDER BY draw_time
	`, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list due drawings: %w", err)
	}
	return collectDrawings(rows)
}

// ListLockableDrawings returns open, unlocked drawings created at or before
// the cutoff.
func (s *Store) ListLockableDrawings(ctx context.Context, cutoff time.Time) ([]models.Drawing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+drawingColumns+`
		FROM drawing
		WHERE status = 'open' AND locked = 0 AND created_at <= $1
		ORDER BY created_at
	`, cutoff.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list lockable drawings: %w", err)
	}
	return collectDrawings(rows)
}

// LockDrawing sets the locked flag on an open, unlocked drawing. Locking is
// orthogonal to status: the drawing stays open.
func (s *Store) LockDrawing(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE drawing
		SET locked = 1, locked_at = $1, updated_at = $2
		WHERE id = $3 AND status = 'open' AND locked = 0
	`, at.UTC(), at.UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to lock drawing: %w", err)
	}
	return applied(res)
}

// FinishDrawing transitions an open drawing to finished with its winners
// payload. Returns false when the drawing was no longer open.
func (s *Store) FinishDrawing(ctx context.Context, id string, winners []models.WinnerInfo, at time.Time) (bool, error) {
	payload, err := json.Marshal(winners)
	if err != nil {
		return false, fmt.Errorf("failed to encode winners: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE drawing
		SET status = 'finished', winners_data = $1, updated_at = $2
		WHERE id = $3 AND status = 'open'
	`, string(payload), at.UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to finish drawing: %w", err)
	}
	return applied(res)
}

// CancelDrawing transitions an open drawing to cancelled with a reason.
// Returns false when the drawing was no longer open.
func (s *Store) CancelDrawing(ctx context.Context, id, reason string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE drawing
		SET status = 'cancelled', cancellation_reason = $1, updated_at = $2
		WHERE id = $3 AND status = 'open'
	`, reason, at.UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to cancel drawing: %w", err)
	}
	return applied(res)
}

// Winners returns the winners payload of a finished drawing, or nil while
// the drawing has none.
func (s *Store) Winners(ctx context.Context, id string) ([]models.WinnerInfo, error) {
	var data sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT winners_data FROM drawing WHERE id = $1`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query winners: %w", err)
	}
	if !data.Valid || data.String == "" {
		return nil, nil
	}
	var winners []models.WinnerInfo
	if err := json.Unmarshal([]byte(data.String), &winners); err != nil {
		return nil, fmt.Errorf("failed to decode winners: %w", err)
	}
	return winners, nil
}

// CountsByStatus aggregates drawings per lifecycle state.
func (s *Store) CountsByStatus(ctx context.Context) (models.StatsResponse, error) {
	var stats models.StatsResponse
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM drawing GROUP BY status`)
	if err != nil {
		return stats, fmt.Errorf("failed to count drawings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, fmt.Errorf("failed to scan counts: %w", err)
		}
		switch status {
		case models.StatusOpen:
			stats.Open = count
		case models.StatusFinished:
			stats.Finished = count
		case models.StatusCancelled:
			stats.Cancelled = count
		}
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("failed to iterate counts: %w", err)
	}
	stats.Total = stats.Open + stats.Finished + stats.Cancelled
	return stats, nil
}

// ReplaceParticipants discards a drawing's participant set and writes the
// fresh one in a single transaction. Row ids are assigned here.
func (s *Store) ReplaceParticipants(ctx context.Context, drawingID string, participants []models.Participant) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM participant WHERE drawing_id = $1`, drawingID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}

	for i := range participants {
		p := &participants[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		p.DrawingID = drawingID
		_, err := tx.ExecContext(ctx, `
			INSERT INTO participant (id, drawing_id, user_id, username, entry_id,
				position, participated_at, is_winner)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, p.ID, p.DrawingID, p.UserID, p.Username, p.EntryID,
			p.Position, p.ParticipatedAt.UTC(), boolToInt(p.IsWinner))
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit participants: %w", err)
	}
	return nil
}

// Participants returns a drawing's participant set ordered by position.
func (s *Store) Participants(ctx context.Context, drawingID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, drawing_id, user_id, username, entry_id, position, participated_at, is_winner
		FROM participant
		WHERE drawing_id = $1
		ORDER BY position
	`, drawingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		var isWinner int
		if err := rows.Scan(&p.ID, &p.DrawingID, &p.UserID, &p.Username, &p.EntryID,
			&p.Position, &p.ParticipatedAt, &isWinner); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		p.IsWinner = isWinner != 0
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// CountParticipants returns the size of a drawing's participant set.
func (s *Store) CountParticipants(ctx context.Context, drawingID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participant WHERE drawing_id = $1`, drawingID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

// MarkWinners sets the winner flag on the given participant rows.
func (s *Store) MarkWinners(ctx context.Context, drawingID string, participantIDs []string) error {
	for _, id := range participantIDs {
		_, err := s.db.ExecContext(ctx, `
			UPDATE participant SET is_winner = 1 WHERE drawing_id = $1 AND id = $2
		`, drawingID, id)
		if err != nil {
			return fmt.Errorf("failed to mark winner: %w", err)
		}
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanDrawing.
type scanner interface {
	Scan(dest ...any) error
}

func scanDrawing(row scanner) (*models.Drawing, error) {
	var d models.Drawing
	var locked int
	var lockedAt sql.NullTime
	var reason sql.NullString

	err := row.Scan(&d.ID, &d.ScopeID, &d.OrganizerID, &d.OrganizerName, &d.Name,
		&d.PrizeDescription, &d.PrizeImageURL, &d.Description, &d.DrawTime, &d.WinnerCount,
		&d.SpecificPositions, &d.MinParticipants, &d.BackupPolicy, &d.SelectionRule,
		&d.Status, &locked, &lockedAt, &reason, &d.CreatedAt, &d.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan drawing: %w", err)
	}

	d.Locked = locked != 0
	if lockedAt.Valid {
		t := lockedAt.Time
		d.LockedAt = &t
	}
	if reason.Valid {
		r := reason.String
		d.CancellationReason = &r
	}
	return &d, nil
}

func collectDrawings(rows *sql.Rows) ([]models.Drawing, error) {
	defer rows.Close()

	var drawings []models.Drawing
	for rows.Next() {
		d, err := scanDrawing(rows)
		if err != nil {
			return nil, err
		}
		drawings = append(drawings, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drawings: %w", err)
	}
	return drawings, nil
}

func applied(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
