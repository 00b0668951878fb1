// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/danielhkuo/quickdraw/models"
	"github.com/danielhkuo/quickdraw/notify"
	"github.com/danielhkuo/quickdraw/policy"
	"github.com/danielhkuo/quickdraw/store"
	"github.com/danielhkuo/quickdraw/venue"
)

// Scope lifecycle tags
const (
	TagRunning   = "drawing-open"
	TagFinished  = "drawing-finished"
	TagCancelled = "drawing-cancelled"
)

// Engine resolves drawings. Every state-changing path (scheduled draw,
// manual draw, lock, user cancellation) serializes through a per-drawing
// mutex held for the whole operation, so a drawing resolves at most once.
type Engine struct {
	store    *store.Store
	venue    venue.Venue
	tagger   venue.Tagger
	notifier notify.Notifier
	policy   policy.Provider

	locks keyedMutex

	// overridable in tests
	now    func() time.Time
	newRNG func() *rand.Rand
}

func New(st *store.Store, ven venue.Venue, tagger venue.Tagger, notifier notify.Notifier, prov policy.Provider) *Engine {
	return &Engine{
		store:    st,
		venue:    ven,
		tagger:   tagger,
		notifier: notifier,
		policy:   prov,
		now:      time.Now,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// ExecuteDraw resolves one drawing. A drawing that is not open or not yet
// due is a logged no-op, which makes retries and overlapping ticks safe.
// Unexpected failures force the drawing to cancelled with the error as the
// reason, then surface as a SystemError for operational logging.
func (e *Engine) ExecuteDraw(ctx context.Context, drawingID string) error {
	unlock := e.locks.Lock(drawingID)
	defer unlock()

	d, err := e.store.GetDrawing(ctx, drawingID)
	if err != nil {
		return err
	}

	now := e.now()
	if !d.CanDraw(now) {
		slog.Info("skipping draw", "drawing_id", d.ID, "status", d.Status, "draw_time", d.DrawTime)
		return nil
	}

	if err := e.resolve(ctx, d, now); err != nil {
		reason := fmt.Sprintf("system error: %v", err)
		applied, cancelErr := e.store.CancelDrawing(ctx, d.ID, reason, e.now())
		if cancelErr != nil {
			slog.Error("failed to cancel drawing after resolution error", "drawing_id", d.ID, "error", cancelErr)
		} else if applied {
			e.finalize(ctx, d, notify.CancellationAnnouncement(d, reason, 0), nil, TagCancelled)
		}
		return &SystemError{Err: err}
	}
	return nil
}

// resolve runs steps 1-5 of a draw attempt against an open, due drawing.
func (e *Engine) resolve(ctx context.Context, d *models.Drawing, now time.Time) error {
	// Recompute the participant set from the venue's current entries.
	entries, err := e.venue.ListQualifyingEntries(ctx, d.ScopeID)
	if err != nil {
		return fmt.Errorf("listing entries: %w", err)
	}
	participants := CollectParticipants(d, entries, e.policy.Current())
	if err := e.store.ReplaceParticipants(ctx, d.ID, participants); err != nil {
		return fmt.Errorf("replacing participants: %w", err)
	}

	count := len(participants)
	if count < d.MinParticipants && d.BackupPolicy == models.BackupCancel {
		reason := fmt.Sprintf("insufficient participants (required %d, got %d)", d.MinParticipants, count)
		return e.cancelResolved(ctx, d, reason, count, now)
	}

	winners, failure := ResolveWinners(participants, d, e.newRNG())
	if failure != "" {
		return e.cancelResolved(ctx, d, failure, count, now)
	}

	winnerIDs := make([]string, len(winners))
	winnerInfos := make([]models.WinnerInfo, len(winners))
	for i, w := range winners {
		winnerIDs[i] = w.ID
		winnerInfos[i] = models.WinnerInfo{
			UserID:   w.UserID,
			Username: w.Username,
			Position: w.Position,
			EntryID:  w.EntryID,
		}
	}
	if err := e.store.MarkWinners(ctx, d.ID, winnerIDs); err != nil {
		return fmt.Errorf("marking winners: %w", err)
	}

	applied, err := e.store.FinishDrawing(ctx, d.ID, winnerInfos, now)
	if err != nil {
		return fmt.Errorf("finishing drawing: %w", err)
	}
	if !applied {
		slog.Warn("drawing resolved elsewhere, skipping finalization", "drawing_id", d.ID)
		return nil
	}

	slog.Info("drawing finished", "drawing_id", d.ID, "winners", len(winnerInfos), "participants", count)
	e.finalize(ctx, d, notify.WinnerAnnouncement(d, winnerInfos, count), winnerInfos, TagFinished)
	return nil
}

// cancelResolved applies an expected cancellation outcome (insufficient
// participants or no matching positions).
func (e *Engine) cancelResolved(ctx context.Context, d *models.Drawing, reason string, count int, now time.Time) error {
	applied, err := e.store.CancelDrawing(ctx, d.ID, reason, now)
	if err != nil {
		return fmt.Errorf("cancelling drawing: %w", err)
	}
	if !applied {
		slog.Warn("drawing resolved elsewhere, skipping cancellation", "drawing_id", d.ID)
		return nil
	}

	slog.Info("drawing cancelled", "drawing_id", d.ID, "reason", reason)
	e.finalize(ctx, d, notify.CancellationAnnouncement(d, reason, count), nil, TagCancelled)
	return nil
}

// Cancel handles a user-requested cancellation. It takes the same
// per-drawing lock as ExecuteDraw, so it cannot race an in-flight draw;
// the loser of that race sees a terminal status and gets a state conflict.
func (e *Engine) Cancel(ctx context.Context, drawingID string, requester models.Requester, reason string) error {
	unlock := e.locks.Lock(drawingID)
	defer unlock()

	d, err := e.store.GetDrawing(ctx, drawingID)
	if err != nil {
		return err
	}

	if requester.UserID != d.OrganizerID && !requester.IsAdmin {
		return ErrPermission
	}
	if d.Status != models.StatusOpen || d.Locked {
		return &StateConflictError{Status: d.Status, Locked: d.Locked}
	}

	if reason == "" {
		reason = "cancelled by organizer"
	}

	applied, err := e.store.CancelDrawing(ctx, drawingID, reason, e.now())
	if err != nil {
		return err
	}
	if !applied {
		return &StateConflictError{Status: models.StatusCancelled}
	}

	count, err := e.store.CountParticipants(ctx, drawingID)
	if err != nil {
		slog.Warn("failed to count participants for announcement", "drawing_id", drawingID, "error", err)
	}

	slog.Info("drawing cancelled by request", "drawing_id", drawingID, "requester", requester.UserID)
	e.finalize(ctx, d, notify.CancellationAnnouncement(d, reason, count), nil, TagCancelled)
	return nil
}

// Lock freezes participation on an open, unlocked drawing. Already-locked
// or terminal drawings are a no-op, so sweep retries are safe.
func (e *Engine) Lock(ctx context.Context, drawingID string) error {
	unlock := e.locks.Lock(drawingID)
	defer unlock()

	d, err := e.store.GetDrawing(ctx, drawingID)
	if err != nil {
		return err
	}
	if d.Status != models.StatusOpen || d.Locked {
		return nil
	}

	applied, err := e.store.LockDrawing(ctx, drawingID, e.now())
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	if err := e.venue.FreezeSubmissions(ctx, d.ScopeID); err != nil {
		slog.Warn("failed to freeze scope submissions", "scope_id", d.ScopeID, "error", err)
	}
	e.notifier.NotifyUser(ctx, d.OrganizerID, notify.LockNotification(d))

	slog.Info("drawing locked", "drawing_id", drawingID)
	return nil
}

// finalize closes the venue down and emits announcement intents. All of it
// is fire-and-forget: the state transition has already committed, and a
// failing adapter must not undo it.
func (e *Engine) finalize(ctx context.Context, d *models.Drawing, announcement string, winners []models.WinnerInfo, tag string) {
	if err := e.venue.FreezeSubmissions(ctx, d.ScopeID); err != nil {
		slog.Warn("failed to freeze scope", "scope_id", d.ScopeID, "error", err)
	}
	if err := e.venue.ArchiveScope(ctx, d.ScopeID); err != nil {
		slog.Warn("failed to archive scope", "scope_id", d.ScopeID, "error", err)
	}
	if e.tagger != nil {
		if err := e.tagger.Retag(ctx, d.ScopeID, tag, TagRunning); err != nil {
			slog.Warn("failed to retag scope", "scope_id", d.ScopeID, "error", err)
		}
	}

	e.notifier.Announce(ctx, d.ScopeID, announcement)
	for _, w := range winners {
		e.notifier.NotifyUser(ctx, w.UserID, notify.WinnerMessage(d, w))
	}
}
