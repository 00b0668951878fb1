// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/danielhkuo/quickdraw/engine"
	"github.com/danielhkuo/quickdraw/models"
	"github.com/danielhkuo/quickdraw/notify"
	"github.com/danielhkuo/quickdraw/policy"
	"github.com/danielhkuo/quickdraw/store"
	"github.com/danielhkuo/quickdraw/testutil"
	"github.com/danielhkuo/quickdraw/venue"
)

func setup(t *testing.T, pol policy.Policy) (*engine.Engine, *store.Store, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	ven := venue.NewSQLVenue(conn)
	eng := engine.New(st, ven, ven, notify.LogNotifier{}, policy.Static{P: pol})
	return eng, st, conn
}

func enabledPolicy() policy.Policy {
	return policy.Policy{Enabled: true, MaxWinners: 20, MinParticipants: 2, LockDelayMinutes: 30}
}

func TestDrawSweepResolvesDueDrawings(t *testing.T) {
	eng, st, conn := setup(t, enabledPolicy())
	cfg := testutil.GetTestConfig()

	dueScope := testutil.CreateTestScope(t, conn, "due-scope")
	dueID, _ := testutil.CreateTestDrawing(t, conn, cfg, dueScope, testutil.DrawingOpts{
		DrawTime:     time.Now().Add(-time.Minute),
		BackupPolicy: models.BackupProceedAnyway,
	})

	futureScope := testutil.CreateTestScope(t, conn, "future-scope")
	futureID, _ := testutil.CreateTestDrawing(t, conn, cfg, futureScope, testutil.DrawingOpts{
		DrawTime: time.Now().Add(time.Hour),
	})

	NewDrawSweeper(eng, st, policy.Static{P: enabledPolicy()}, time.Minute).Sweep(context.Background())

	due, _ := st.GetDrawing(context.Background(), dueID)
	if due.Status != models.StatusFinished {
		t.Errorf("Due drawing should resolve, got %s", due.Status)
	}
	future, _ := st.GetDrawing(context.Background(), futureID)
	if future.Status != models.StatusOpen {
		t.Errorf("Future drawing must stay open, got %s", future.Status)
	}
}

func TestDrawSweepContinuesPastFailures(t *testing.T) {
	eng, st, conn := setup(t, enabledPolicy())
	cfg := testutil.GetTestConfig()

	// no entries and a cancel backup policy: resolves to cancelled
	firstScope := testutil.CreateTestScope(t, conn, "first-scope")
	firstID, _ := testutil.CreateTestDrawing(t, conn, cfg, firstScope, testutil.DrawingOpts{
		DrawTime:     time.Now().Add(-2 * time.Minute),
		BackupPolicy: models.BackupCancel,
	})

	secondScope := testutil.CreateTestScope(t, conn, "second-scope")
	secondID, _ := testutil.CreateTestDrawing(t, conn, cfg, secondScope, testutil.DrawingOpts{
		DrawTime:     time.Now().Add(-time.Minute),
		BackupPolicy: models.BackupProceedAnyway,
	})
	testutil.AddTestEntry(t, conn, secondScope, "user1", 2)
	testutil.AddTestEntry(t, conn, secondScope, "user2", 3)

	NewDrawSweeper(eng, st, policy.Static{P: enabledPolicy()}, time.Minute).Sweep(context.Background())

	first, _ := st.GetDrawing(context.Background(), firstID)
	if first.Status != models.StatusCancelled {
		t.Errorf("Expected first drawing cancelled, got %s", first.Status)
	}
	second, _ := st.GetDrawing(context.Background(), secondID)
	if second.Status != models.StatusFinished {
		t.Errorf("Sweep must continue past earlier outcomes, got %s", second.Status)
	}
}

func TestDrawSweepRespectsFeatureFlag(t *testing.T) {
	pol := enabledPolicy()
	pol.Enabled = false
	eng, st, conn := setup(t, pol)
	cfg := testutil.GetTestConfig()

	scope := testutil.CreateTestScope(t, conn, "flagged-scope")
	id, _ := testutil.CreateTestDrawing(t, conn, cfg, scope, testutil.DrawingOpts{
		DrawTime: time.Now().Add(-time.Minute),
	})

	NewDrawSweeper(eng, st, policy.Static{P: pol}, time.Minute).Sweep(context.Background())

	d, _ := st.GetDrawing(context.Background(), id)
	if d.Status != models.StatusOpen {
		t.Errorf("Disabled feature must not draw, got %s", d.Status)
	}
}

func TestLockSweepLocksOverdueDrawings(t *testing.T) {
	eng, st, conn := setup(t, enabledPolicy())
	cfg := testutil.GetTestConfig()

	oldScope := testutil.CreateTestScope(t, conn, "old-scope")
	oldID, _ := testutil.CreateTestDrawing(t, conn, cfg, oldScope, testutil.DrawingOpts{
		CreatedAt: time.Now().Add(-time.Hour),
	})

	newScope := testutil.CreateTestScope(t, conn, "new-scope")
	newID, _ := testutil.CreateTestDrawing(t, conn, cfg, newScope, testutil.DrawingOpts{})

	NewLockSweeper(eng, st, policy.Static{P: enabledPolicy()}, time.Minute).Sweep(context.Background())

	old, _ := st.GetDrawing(context.Background(), oldID)
	if !old.Locked {
		t.Errorf("Hour-old drawing should be locked with a 30 minute delay")
	}
	fresh, _ := st.GetDrawing(context.Background(), newID)
	if fresh.Locked {
		t.Errorf("Fresh drawing must not be locked yet")
	}
}

func TestLockSweepDisabledByZeroDelay(t *testing.T) {
	pol := enabledPolicy()
	pol.LockDelayMinutes = 0
	eng, st, conn := setup(t, pol)
	cfg := testutil.GetTestConfig()

	scope := testutil.CreateTestScope(t, conn, "zero-delay-scope")
	id, _ := testutil.CreateTestDrawing(t, conn, cfg, scope, testutil.DrawingOpts{
		CreatedAt: time.Now().Add(-time.Hour),
	})

	NewLockSweeper(eng, st, policy.Static{P: pol}, time.Minute).Sweep(context.Background())

	d, _ := st.GetDrawing(context.Background(), id)
	if d.Locked {
		t.Errorf("Zero lock delay disables the sweep entirely")
	}
}

func TestSweepersStopOnContextCancel(t *testing.T) {
	eng, st, _ := setup(t, enabledPolicy())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		NewDrawSweeper(eng, st, policy.Static{P: enabledPolicy()}, 10*time.Millisecond).Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sweeper did not stop after context cancellation")
	}
}
