// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/quickdraw/models"
	"github.com/danielhkuo/quickdraw/policy"
)

const (
	maxNameLength  = 255
	maxPrizeLength = 1000
)

// Drawing checks a proposed drawing configuration against the global policy
// and returns every violated rule, never just the first. An empty result
// means the configuration is acceptable.
func Drawing(req models.CreateDrawingRequest, pol policy.Policy, now time.Time) []models.FieldError {
	var errs []models.FieldError
	add := func(field, message string) {
		errs = append(errs, models.FieldError{Field: field, Message: message})
	}

	if strings.TrimSpace(req.Name) == "" {
		add("name", "name is required")
	} else if len(req.Name) > maxNameLength {
		add("name", fmt.Sprintf("name must be at most %d characters", maxNameLength))
	}

	if strings.TrimSpace(req.PrizeDescription) == "" {
		add("prize_description", "prize description is required")
	} else if len(req.PrizeDescription) > maxPrizeLength {
		add("prize_description", fmt.Sprintf("prize description must be at most %d characters", maxPrizeLength))
	}

	if strings.TrimSpace(req.ScopeID) == "" {
		add("scope_id", "scope_id is required")
	}
	if strings.TrimSpace(req.OrganizerID) == "" {
		add("organizer_id", "organizer_id is required")
	}

	if req.DrawTime == "" {
		add("draw_time", "draw time is required")
	} else if drawTime, err := ParseDrawTime(req.DrawTime); err != nil {
		add("draw_time", "draw time must be a valid RFC 3339 timestamp")
	} else if !drawTime.After(now) {
		add("draw_time", "draw time must be in the future")
	}

	switch req.SelectionRule {
	case models.RuleRandom:
		if req.WinnerCount <= 0 {
			add("winner_count", "winner count must be a positive integer")
		} else if req.WinnerCount > pol.MaxWinners {
			add("winner_count", fmt.Sprintf("winner count must not exceed %d", pol.MaxWinners))
		}
	case models.RuleFixedPosition:
		positions, problems := ParsePositions(req.SpecificPositions)
		for _, p := range problems {
			add("specific_positions", p)
		}
		if len(problems) == 0 && len(positions) > pol.MaxWinners {
			add("specific_positions", fmt.Sprintf("at most %d positions allowed", pol.MaxWinners))
		}
	default:
		add("selection_rule", "selection rule must be random or fixed-position")
	}

	if req.MinParticipants < pol.MinParticipants {
		add("min_participants", fmt.Sprintf("minimum participants must be at least %d", pol.MinParticipants))
	}

	if req.BackupPolicy != models.BackupProceedAnyway && req.BackupPolicy != models.BackupCancel {
		add("backup_policy", "backup policy must be proceed-anyway or cancel")
	}

	return errs
}

// ParseDrawTime parses the submitted draw time.
func ParseDrawTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// ParsePositions parses a comma-separated position list like "8, 18, 28".
// It returns the positions in their configured order together with every
// problem found: non-numeric tokens, positions not greater than 1 (position
// 1 is the organizer's opening entry), duplicates, and an empty list.
func ParsePositions(s string) ([]int, []string) {
	var problems []string

	if strings.TrimSpace(s) == "" {
		return nil, []string{"position list is required for fixed-position drawings"}
	}

	seen := make(map[int]bool)
	var positions []int
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%q is not a valid position", token))
			continue
		}
		if n <= 1 {
			problems = append(problems, fmt.Sprintf("position %d is not allowed; positions must be greater than 1", n))
			continue
		}
		if seen[n] {
			problems = append(problems, fmt.Sprintf("duplicate position %d", n))
			continue
		}
		seen[n] = true
		positions = append(positions, n)
	}

	if len(positions) == 0 && len(problems) == 0 {
		problems = append(problems, "position list is required for fixed-position drawings")
	}

	return positions, problems
}

// NormalizePositions re-serializes a parsed position list into canonical
// stored form ("8,18,28").
func NormalizePositions(positions []int) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
