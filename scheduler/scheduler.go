// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickdraw/engine"
	"github.com/danielhkuo/quickdraw/policy"
	"github.com/danielhkuo/quickdraw/store"
)

// DrawSweeper periodically finds due drawings and resolves each one. The
// engine's per-drawing lock makes overlapping ticks harmless.
type DrawSweeper struct {
	engine   *engine.Engine
	store    *store.Store
	policy   policy.Provider
	interval time.Duration

	now func() time.Time
}

func NewDrawSweeper(eng *engine.Engine, st *store.Store, prov policy.Provider, interval time.Duration) *DrawSweeper {
	return &DrawSweeper{
		engine:   eng,
		store:    st,
		policy:   prov,
		interval: interval,
		now:      time.Now,
	}
}

// Run ticks until the context is cancelled.
func (s *DrawSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("draw sweeper started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("draw sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep resolves every due drawing once. A failure on one drawing never
// aborts the rest of the sweep.
func (s *DrawSweeper) Sweep(ctx context.Context) {
	if !s.policy.Current().Enabled {
		return
	}

	due, err := s.store.ListDueDrawings(ctx, s.now())
	if err != nil {
		slog.Error("failed to list due drawings", "error", err)
		return
	}

	for _, d := range due {
		slog.Info("executing scheduled draw", "drawing_id", d.ID, "name", d.Name)
		if err := s.engine.ExecuteDraw(ctx, d.ID); err != nil {
			slog.Error("scheduled draw failed", "drawing_id", d.ID, "error", err)
		}
	}
}

// LockSweeper periodically locks drawings whose lock delay has elapsed.
// When the lock delay policy is zero this sweeper is never started:
// drawings lock immediately at creation instead.
type LockSweeper struct {
	engine   *engine.Engine
	store    *store.Store
	policy   policy.Provider
	interval time.Duration

	now func() time.Time
}

func NewLockSweeper(eng *engine.Engine, st *store.Store, prov policy.Provider, interval time.Duration) *LockSweeper {
	return &LockSweeper{
		engine:   eng,
		store:    st,
		policy:   prov,
		interval: interval,
		now:      time.Now,
	}
}

// Run ticks until the context is cancelled.
func (s *LockSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("lock sweeper started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("lock sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep locks every overdue drawing. A failure on one drawing never blocks
// the others.
func (s *LockSweeper) Sweep(ctx context.Context) {
	pol := s.policy.Current()
	if !pol.Enabled || pol.LockDelayMinutes <= 0 {
		return
	}

	cutoff := s.now().Add(-time.Duration(pol.LockDelayMinutes) * time.Minute)
	lockable, err := s.store.ListLockableDrawings(ctx, cutoff)
	if err != nil {
		slog.Error("failed to list lockable drawings", "error", err)
		return
	}

	for _, d := range lockable {
		if err := s.engine.Lock(ctx, d.ID); err != nil {
			slog.Error("failed to lock drawing", "drawing_id", d.ID, "error", err)
		}
	}
}
