// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain and API types for Quickdraw.

# Domain Types

  - Drawing: one timed, gated selection process and its configuration
  - Participant: a person whose qualifying entry counts toward a drawing
  - Scope / Entry: the venue-side thread and its qualifying submissions
  - WinnerInfo: one element of a finished drawing's winners payload

# Drawing Lifecycle

Drawings progress through three states:

	open → finished   (winners resolved)
	open → cancelled  (user cancellation, insufficient participants,
	                   no valid positions, or system error)

Both end states are terminal. The Locked flag is orthogonal to status: a
locked drawing stops honoring new entries but is still open until drawn.

# Selection Rules

  - random: WinnerCount participants drawn uniformly without replacement
  - fixed-position: winners are whoever holds the configured entry
    positions (SpecificPositions, e.g. "8, 18, 28")

# Backup Policies

When fewer than MinParticipants entered by draw time:

  - proceed-anyway: draw from whoever is there (possibly nobody)
  - cancel: cancel with a reason citing required and actual counts
*/
package models
