// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"strconv"
	"strings"
	"time"
)

// Drawing status constants
const (
	StatusOpen      = "open"
	StatusFinished  = "finished"
	StatusCancelled = "cancelled"
)

// Selection rule constants
const (
	RuleRandom        = "random"
	RuleFixedPosition = "fixed-position"
)

// Backup policy constants (applied when too few participants at draw time)
const (
	BackupProceedAnyway = "proceed-anyway"
	BackupCancel        = "cancel"
)

// Request types

type CreateDrawingRequest struct {
	ScopeID           string `json:"scope_id"`
	OrganizerID       string `json:"organizer_id"`
	OrganizerName     string `json:"organizer_name"`
	Name              string `json:"name"`
	PrizeDescription  string `json:"prize_description"`
	PrizeImageURL     string `json:"prize_image_url"`
	Description       string `json:"description"`
	DrawTime          string `json:"draw_time"` // RFC 3339
	WinnerCount       int    `json:"winner_count"`
	SpecificPositions string `json:"specific_positions"` // e.g. "8, 18, 28"
	MinParticipants   int    `json:"min_participants"`
	BackupPolicy      string `json:"backup_policy"`
	SelectionRule     string `json:"selection_rule"`
}

type CancelDrawingRequest struct {
	Reason string `json:"reason"`
}

type RecordEntryRequest struct {
	AuthorID     string `json:"author_id"`
	AuthorName   string `json:"author_name"`
	AuthorGroups string `json:"author_groups"` // comma-separated group names
}

// Response types

type CreateDrawingResponse struct {
	Drawing      Drawing `json:"drawing"`
	OrganizerKey string  `json:"organizer_key"`
}

type DrawingResponse struct {
	Drawing          Drawing      `json:"drawing"`
	ParticipantCount int          `json:"participant_count"`
	TimeUntilDraw    int64        `json:"time_until_draw_seconds"`
	Winners          []WinnerInfo `json:"winners,omitempty"`
}

type ParticipantsResponse struct {
	Participants []Participant `json:"participants"`
	TotalCount   int           `json:"total_count"`
	WinnersCount int           `json:"winners_count"`
}

type StatsResponse struct {
	Open      int `json:"open"`
	Finished  int `json:"finished"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

type RecordEntryResponse struct {
	EntryID  string `json:"entry_id"`
	Position int    `json:"position"`
}

// Domain types

type Drawing struct {
	ID                 string     `json:"id"`
	ScopeID            string     `json:"scope_id"`
	OrganizerID        string     `json:"organizer_id"`
	OrganizerName      string     `json:"organizer_name"`
	Name               string     `json:"name"`
	PrizeDescription   string     `json:"prize_description"`
	PrizeImageURL      string     `json:"prize_image_url,omitempty"`
	Description        string     `json:"description,omitempty"`
	DrawTime           time.Time  `json:"draw_time"`
	WinnerCount        int        `json:"winner_count"`
	SpecificPositions  string     `json:"specific_positions,omitempty"`
	MinParticipants    int        `json:"min_participants"`
	BackupPolicy       string     `json:"backup_policy"`
	SelectionRule      string     `json:"selection_rule"`
	Status             string     `json:"status"`
	Locked             bool       `json:"locked"`
	LockedAt           *time.Time `json:"locked_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Positions parses the configured fixed positions, dropping anything that is
// not a positive integer. The raw string is validated at creation time, so
// this accessor is forgiving about stored data.
func (d *Drawing) Positions() []int {
	if d.SpecificPositions == "" {
		return nil
	}
	parts := strings.Split(d.SpecificPositions, ",")
	positions := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			continue
		}
		positions = append(positions, n)
	}
	return positions
}

// CanDraw reports whether the drawing is due for resolution.
func (d *Drawing) CanDraw(now time.Time) bool {
	return d.Status == StatusOpen && !d.DrawTime.After(now)
}

// CanEdit reports whether the configuration may still be changed.
func (d *Drawing) CanEdit() bool {
	return d.Status == StatusOpen && !d.Locked
}

type Participant struct {
	ID             string    `json:"id"`
	DrawingID      string    `json:"drawing_id"`
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	EntryID        string    `json:"entry_id"`
	Position       int       `json:"position"`
	ParticipatedAt time.Time `json:"participated_at"`
	IsWinner       bool      `json:"is_winner"`
}

// WinnerInfo is one element of a finished drawing's winners payload.
type WinnerInfo struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Position int    `json:"position"`
	EntryID  string `json:"entry_id"`
}

// Scope is the venue-side container a drawing is bound to (the discussion
// thread in the original forum deployment). Entries accrue in a scope; the
// engine freezes and archives it when the drawing resolves.
type Scope struct {
	ID        string    `json:"id"`
	Frozen    bool      `json:"frozen"`
	Archived  bool      `json:"archived"`
	Tag       string    `json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Entry is one qualifying action submitted to a scope. Position 1 is the
// organizer's opening entry and never qualifies.
type Entry struct {
	ID            string    `json:"id"`
	ScopeID       string    `json:"scope_id"`
	AuthorID      string    `json:"author_id"`
	AuthorName    string    `json:"author_name"`
	AuthorGroups  string    `json:"author_groups,omitempty"`
	Position      int       `json:"position"`
	CreatedAt     time.Time `json:"created_at"`
	Hidden        bool      `json:"hidden"`
	AuthorRemoved bool      `json:"author_removed"`
}

// Groups splits the comma-separated author group names.
func (e *Entry) Groups() []string {
	if e.AuthorGroups == "" {
		return nil
	}
	parts := strings.Split(e.AuthorGroups, ",")
	groups := make([]string, 0, len(parts))
	for _, g := range parts {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

// Requester identifies who is asking for a state-changing action.
type Requester struct {
	UserID  string
	IsAdmin bool
}

// Error responses

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FieldError is a single field-level validation failure. Validation reports
// every violated rule together, never just the first.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields"`
}
