// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds all SQL for drawings and participants.

# Guarded Transitions

The drawing lifecycle has exactly two terminal transitions, and both are
guarded updates:

	FinishDrawing: UPDATE ... WHERE id = ? AND status = 'open'
	CancelDrawing: UPDATE ... WHERE id = ? AND status = 'open'

Each returns whether the update applied. A false result means another
caller already resolved the drawing; the loser treats it as a no-op. The
same pattern guards LockDrawing (open and unlocked only) and
UpdateDrawingConfig (open and unlocked only), so even a racer outside the
process-level mutex cannot corrupt state.

# Participants

ReplaceParticipants rewrites a drawing's full participant set in one
transaction: the set is recomputed from the venue's current entries on
every draw attempt. Participant rows receive UUID ids at insert.
*/
package store
