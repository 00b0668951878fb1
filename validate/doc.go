// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package validate is the gate every proposed drawing configuration passes
before creation or edit.

Drawing collects all field-level violations in one pass:

	errs := validate.Drawing(req, prov.Current(), time.Now())
	if len(errs) > 0 {
		// 422 with the full list; nothing was created
	}

Rules enforced: non-empty name and prize within length limits, RFC 3339
draw time strictly in the future, positive winner count within the global
maximum, minimum participants at or above the global floor, recognized
backup policy and selection rule, and for fixed-position drawings a
non-empty, distinct position list (all positions > 1) capped at the
global maximum.
*/
package validate
