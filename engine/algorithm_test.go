// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/danielhkuo/quickdraw/models"
)

func fixedRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func participantsAt(positions ...int) []models.Participant {
	var out []models.Participant
	for _, pos := range positions {
		out = append(out, models.Participant{
			ID:       "p" + string(rune('a'+len(out))),
			UserID:   "user-" + string(rune('a'+len(out))),
			Position: pos,
		})
	}
	return out
}

func TestResolveWinnersRandomCount(t *testing.T) {
	d := &models.Drawing{SelectionRule: models.RuleRandom, WinnerCount: 2}
	participants := participantsAt(2, 3, 4, 5)

	winners, failure := ResolveWinners(participants, d, fixedRNG())
	if failure != "" {
		t.Fatalf("Unexpected failure: %s", failure)
	}
	if len(winners) != 2 {
		t.Fatalf("Expected 2 winners, got %d", len(winners))
	}
	if winners[0].UserID == winners[1].UserID {
		t.Errorf("Winners must be distinct, got %s twice", winners[0].UserID)
	}
}

func TestResolveWinnersRandomCappedByParticipants(t *testing.T) {
	d := &models.Drawing{SelectionRule: models.RuleRandom, WinnerCount: 10}
	winners, failure := ResolveWinners(participantsAt(2, 3, 4), d, fixedRNG())
	if failure != "" {
		t.Fatalf("Unexpected failure: %s", failure)
	}
	if len(winners) != 3 {
		t.Errorf("Expected all 3 participants to win, got %d", len(winners))
	}
}

func TestResolveWinnersRandomZeroParticipants(t *testing.T) {
	d := &models.Drawing{SelectionRule: models.RuleRandom, WinnerCount: 2}
	winners, failure := ResolveWinners(nil, d, fixedRNG())
	if failure != "" {
		t.Fatalf("Zero participants is not a selection failure, got: %s", failure)
	}
	if len(winners) != 0 {
		t.Errorf("Expected no winners, got %d", len(winners))
	}
}

func TestResolveWinnersRandomDeterministicWithSameSource(t *testing.T) {
	d := &models.Drawing{SelectionRule: models.RuleRandom, WinnerCount: 3}
	participants := participantsAt(2, 3, 4, 5, 6, 7)

	first, _ := ResolveWinners(participants, d, fixedRNG())
	second, _ := ResolveWinners(participants, d, fixedRNG())
	for i := range first {
		if first[i].UserID != second[i].UserID {
			t.Fatalf("Same seed produced different winners: %v vs %v", first, second)
		}
	}
}

func TestResolveWinnersFixedPositions(t *testing.T) {
	d := &models.Drawing{
		SelectionRule:     models.RuleFixedPosition,
		SpecificPositions: "8, 18, 28",
	}
	participants := participantsAt(2, 8, 28, 40)

	winners, failure := ResolveWinners(participants, d, fixedRNG())
	if failure != "" {
		t.Fatalf("Unexpected failure: %s", failure)
	}
	if len(winners) != 2 {
		t.Fatalf("Expected 2 winners (positions 8 and 28), got %d", len(winners))
	}
	if winners[0].Position != 8 || winners[1].Position != 28 {
		t.Errorf("Expected winners at positions 8 and 28 in order, got %d and %d",
			winners[0].Position, winners[1].Position)
	}
}

func TestResolveWinnersFixedPositionsNoneMatched(t *testing.T) {
	d := &models.Drawing{
		SelectionRule:     models.RuleFixedPosition,
		SpecificPositions: "8, 18",
	}
	winners, failure := ResolveWinners(participantsAt(2, 3, 4), d, fixedRNG())
	if failure != FailureNoValidPositions {
		t.Fatalf("Expected %q, got %q", FailureNoValidPositions, failure)
	}
	if winners != nil {
		t.Errorf("Expected no winners on failure, got %v", winners)
	}
}
