// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides ID generation and key validation.

# IDs

GenerateID creates cryptographically random hex identifiers:

	drawingID, err := auth.GenerateID(16) // 32 hex chars

# Organizer Keys

Each drawing has a deterministic HMAC-derived organizer key, returned once
at creation and never stored:

	key := auth.GenerateOrganizerKey(drawingID, cfg.OrganizerKeySalt)
	err := auth.ValidateOrganizerKey(drawingID, presentedKey, cfg.OrganizerKeySalt)

The key authorizes edit and cancel operations for that one drawing.

# Admin Token

A single configured token authorizes administrator operations (manual draw
triggers, cancelling any drawing). Comparison is constant-time:

	if auth.ValidAdminToken(r.Header.Get("X-Admin-Token"), cfg.AdminToken) { ... }
*/
package auth
