// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"math/rand/v2"

	"github.com/danielhkuo/quickdraw/models"
)

// FailureNoValidPositions is the failure reason when a fixed-position
// drawing matches no participant at all.
const FailureNoValidPositions = "no valid positions matched"

// ResolveWinners runs the drawing's selection rule over the participant
// set. It is pure: identical inputs and an identical random source always
// produce identical winners.
//
// The random rule draws min(winner count, participant count) participants
// uniformly without replacement; zero participants yields zero winners and
// no failure (emptiness is the caller's policy decision, not the
// algorithm's). The fixed-position rule picks the participant at each
// configured position, silently skipping unoccupied positions, and fails
// only when nothing matched; winners follow the configured position order.
func ResolveWinners(participants []models.Participant, d *models.Drawing, rng *rand.Rand) ([]models.Participant, string) {
	if d.SelectionRule == models.RuleFixedPosition {
		return resolveFixedPositions(participants, d.Positions())
	}
	return resolveRandom(participants, d.WinnerCount, rng), ""
}

func resolveRandom(participants []models.Participant, winnerCount int, rng *rand.Rand) []models.Participant {
	shuffled := make([]models.Participant, len(participants))
	copy(shuffled, participants)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if winnerCount > len(shuffled) {
		winnerCount = len(shuffled)
	}
	return shuffled[:winnerCount]
}

func resolveFixedPositions(participants []models.Participant, positions []int) ([]models.Participant, string) {
	byPosition := make(map[int]models.Participant, len(participants))
	for _, p := range participants {
		byPosition[p.Position] = p
	}

	var winners []models.Participant
	for _, pos := range positions {
		if p, ok := byPosition[pos]; ok {
			winners = append(winners, p)
		}
	}

	if len(winners) == 0 {
		return nil, FailureNoValidPositions
	}
	return winners, ""
}
