// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"testing"
	"time"

	"github.com/danielhkuo/quickdraw/models"
	"github.com/danielhkuo/quickdraw/policy"
)

func entry(authorID string, position int) models.Entry {
	return models.Entry{
		ID:         authorID + "-entry",
		AuthorID:   authorID,
		AuthorName: authorID,
		Position:   position,
		CreatedAt:  time.Now(),
	}
}

func TestCollectParticipantsExcludesOrganizer(t *testing.T) {
	d := &models.Drawing{ID: "d1", OrganizerID: "alice"}
	entries := []models.Entry{entry("alice", 2), entry("bob", 3)}

	participants := CollectParticipants(d, entries, policy.Policy{})
	if len(participants) != 1 {
		t.Fatalf("Expected 1 participant, got %d", len(participants))
	}
	if participants[0].UserID != "bob" {
		t.Errorf("Expected bob, got %s", participants[0].UserID)
	}
}

func TestCollectParticipantsSkipsHiddenAndRemoved(t *testing.T) {
	d := &models.Drawing{ID: "d1", OrganizerID: "alice"}

	hidden := entry("bob", 2)
	hidden.Hidden = true
	removed := entry("carol", 3)
	removed.AuthorRemoved = true

	entries := []models.Entry{hidden, removed, entry("dave", 4)}
	participants := CollectParticipants(d, entries, policy.Policy{})
	if len(participants) != 1 || participants[0].UserID != "dave" {
		t.Fatalf("Expected only dave, got %+v", participants)
	}
}

func TestCollectParticipantsSkipsExcludedGroups(t *testing.T) {
	d := &models.Drawing{ID: "d1", OrganizerID: "alice"}

	staff := entry("bob", 2)
	staff.AuthorGroups = "staff, regulars"

	entries := []models.Entry{staff, entry("carol", 3)}
	pol := policy.Policy{ExcludedGroups: []string{"staff"}}

	participants := CollectParticipants(d, entries, pol)
	if len(participants) != 1 || participants[0].UserID != "carol" {
		t.Fatalf("Expected only carol, got %+v", participants)
	}
}

func TestCollectParticipantsDeduplicatesToEarliestEntry(t *testing.T) {
	d := &models.Drawing{ID: "d1", OrganizerID: "alice"}

	first := entry("bob", 2)
	second := entry("bob", 5)
	second.ID = "bob-later"

	entries := []models.Entry{first, entry("carol", 3), second}
	participants := CollectParticipants(d, entries, policy.Policy{})

	if len(participants) != 2 {
		t.Fatalf("Expected 2 participants, got %d", len(participants))
	}
	if participants[0].UserID != "bob" || participants[0].Position != 2 {
		t.Errorf("Expected bob at position 2, got %s at %d", participants[0].UserID, participants[0].Position)
	}
	if participants[0].EntryID != "bob-entry" {
		t.Errorf("Expected bob's earliest entry, got %s", participants[0].EntryID)
	}
}

func TestCollectParticipantsPreservesPositionOrder(t *testing.T) {
	d := &models.Drawing{ID: "d1", OrganizerID: "alice"}
	entries := []models.Entry{entry("bob", 2), entry("carol", 3), entry("dave", 7)}

	participants := CollectParticipants(d, entries, policy.Policy{})
	for i := 1; i < len(participants); i++ {
		if participants[i].Position <= participants[i-1].Position {
			t.Errorf("Participants out of order: %+v", participants)
		}
	}
}

func TestCollectParticipantsEmptyIsValid(t *testing.T) {
	d := &models.Drawing{ID: "d1", OrganizerID: "alice"}
	participants := CollectParticipants(d, nil, policy.Policy{})
	if len(participants) != 0 {
		t.Errorf("Expected no participants, got %d", len(participants))
	}
}
