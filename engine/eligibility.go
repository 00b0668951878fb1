// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"github.com/danielhkuo/quickdraw/models"
	"github.com/danielhkuo/quickdraw/policy"
)

// CollectParticipants turns a scope's entries into the drawing's ordered
// eligible participant set. Entries must arrive in sequence-position order.
//
// Rules, applied in order: the organizer never participates; hidden entries
// and removed authors are skipped; authors in a globally excluded group are
// skipped; multiple entries by the same author collapse to their earliest
// one. The result is ordered by entry position. An empty result is valid —
// the caller decides what to do about it.
func CollectParticipants(d *models.Drawing, entries []models.Entry, pol policy.Policy) []models.Participant {
	seen := make(map[string]bool)
	var participants []models.Participant

	for i := range entries {
		e := &entries[i]
		if e.AuthorID == d.OrganizerID {
			continue
		}
		if e.Hidden || e.AuthorRemoved {
			continue
		}
		if pol.IsExcludedGroup(e.Groups()) {
			continue
		}
		if seen[e.AuthorID] {
			continue
		}
		seen[e.AuthorID] = true

		participants = append(participants, models.Participant{
			DrawingID:      d.ID,
			UserID:         e.AuthorID,
			Username:       e.AuthorName,
			EntryID:        e.ID,
			Position:       e.Position,
			ParticipatedAt: e.CreatedAt,
		})
	}

	return participants
}
