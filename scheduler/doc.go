// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scheduler runs the two background sweeps.

DrawSweeper (default every minute) resolves drawings whose draw time has
passed. LockSweeper (default every five minutes) freezes participation on
drawings older than the configured lock delay; it is skipped entirely when
the delay is zero, because creation then locks immediately.

Both are plain ticker loops started from main:

	go scheduler.NewDrawSweeper(eng, st, prov, cfg.DrawInterval).Run(ctx)

Each sweep isolates per-drawing failures so one bad drawing cannot starve
the rest, and both honor the feature flag on every tick.
*/
package scheduler
