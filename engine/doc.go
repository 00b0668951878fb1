// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine is the drawing lifecycle core: eligibility filtering, winner
selection, and the state machine transitions.

# Resolution

ExecuteDraw runs one draw attempt end to end:

 1. Recompute the participant set from the venue's current entries
    (CollectParticipants; the old set is discarded).
 2. Check the minimum-participant threshold; too few participants either
    cancel the drawing or, under the proceed-anyway backup policy, draw
    from whoever is there — including nobody.
 3. Run the selection rule (ResolveWinners): uniform random without
    replacement, or fixed entry positions.
 4. Transition to finished with the winners payload, or cancelled with a
    reason.
 5. Freeze and archive the scope, retag it, and emit announcement and
    winner-notification intents (fire-and-forget).

# At-Most-Once

Every state-changing operation — ExecuteDraw, Cancel, Lock — acquires a
per-drawing mutex for its full duration, and every terminal transition in
the store is additionally guarded by status. Overlapping scheduler ticks,
manual draw triggers, and user cancellations therefore cannot double-
resolve a drawing; losers observe a terminal state and no-op (or report a
state conflict, for user-facing calls).

# Failure Semantics

Expected empty outcomes (no participants, no matching positions) travel as
explicit values, never as errors. Unexpected failures during resolution
force the drawing to cancelled with the error embedded in the reason and
surface as a *SystemError, so a drawing never sticks open past its draw
time.
*/
package engine
