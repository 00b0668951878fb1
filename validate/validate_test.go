// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickdraw/models"
	"github.com/danielhkuo/quickdraw/policy"
)

var testPolicy = policy.Policy{
	Enabled:         true,
	MaxWinners:      10,
	MinParticipants: 2,
}

func validRequest(now time.Time) models.CreateDrawingRequest {
	return models.CreateDrawingRequest{
		ScopeID:          "scope1",
		OrganizerID:      "user1",
		OrganizerName:    "Organizer",
		Name:             "Spring Giveaway",
		PrizeDescription: "A book",
		DrawTime:         now.Add(time.Hour).Format(time.RFC3339),
		WinnerCount:      3,
		MinParticipants:  5,
		BackupPolicy:     models.BackupCancel,
		SelectionRule:    models.RuleRandom,
	}
}

func fieldsOf(errs []models.FieldError) map[string]int {
	fields := make(map[string]int)
	for _, e := range errs {
		fields[e.Field]++
	}
	return fields
}

func TestValidConfigurationPasses(t *testing.T) {
	now := time.Now()
	if errs := Drawing(validRequest(now), testPolicy, now); len(errs) != 0 {
		t.Errorf("Expected valid config to pass, got %v", errs)
	}
}

func TestAllViolationsReportedTogether(t *testing.T) {
	now := time.Now()
	req := validRequest(now)
	req.Name = ""
	req.PrizeDescription = ""
	req.DrawTime = now.Add(-time.Hour).Format(time.RFC3339)
	req.WinnerCount = 0
	req.MinParticipants = 1
	req.BackupPolicy = "retry"

	errs := Drawing(req, testPolicy, now)
	fields := fieldsOf(errs)

	for _, want := range []string{"name", "prize_description", "draw_time", "winner_count", "min_participants", "backup_policy"} {
		if fields[want] == 0 {
			t.Errorf("Expected a violation for %s, got %v", want, errs)
		}
	}
}

func TestDrawTimeRules(t *testing.T) {
	now := time.Now()

	req := validRequest(now)
	req.DrawTime = "not-a-time"
	if fields := fieldsOf(Drawing(req, testPolicy, now)); fields["draw_time"] == 0 {
		t.Error("Expected unparseable draw time to be rejected")
	}

	req.DrawTime = now.Format(time.RFC3339)
	if fields := fieldsOf(Drawing(req, testPolicy, now)); fields["draw_time"] == 0 {
		t.Error("Expected non-future draw time to be rejected")
	}

	req.DrawTime = ""
	if fields := fieldsOf(Drawing(req, testPolicy, now)); fields["draw_time"] == 0 {
		t.Error("Expected missing draw time to be rejected")
	}
}

func TestWinnerCountAgainstPolicy(t *testing.T) {
	now := time.Now()
	req := validRequest(now)
	req.WinnerCount = testPolicy.MaxWinners + 1

	if fields := fieldsOf(Drawing(req, testPolicy, now)); fields["winner_count"] == 0 {
		t.Error("Expected winner count above policy max to be rejected")
	}
}

func TestFixedPositionRules(t *testing.T) {
	now := time.Now()
	req := validRequest(now)
	req.SelectionRule = models.RuleFixedPosition
	req.WinnerCount = 0 // ignored for fixed-position

	req.SpecificPositions = "8, 18, 28"
	if errs := Drawing(req, testPolicy, now); len(errs) != 0 {
		t.Errorf("Expected valid position list to pass, got %v", errs)
	}

	req.SpecificPositions = ""
	if fields := fieldsOf(Drawing(req, testPolicy, now)); fields["specific_positions"] == 0 {
		t.Error("Expected empty position list to be rejected")
	}

	req.SpecificPositions = "8,8"
	if fields := fieldsOf(Drawing(req, testPolicy, now)); fields["specific_positions"] == 0 {
		t.Error("Expected duplicate positions to be rejected")
	}

	req.SpecificPositions = "1,8"
	if fields := fieldsOf(Drawing(req, testPolicy, now)); fields["specific_positions"] == 0 {
		t.Error("Expected position 1 to be rejected")
	}

	req.SpecificPositions = "2,3,4,5,6,7,8,9,10,11,12"
	if fields := fieldsOf(Drawing(req, testPolicy, now)); fields["specific_positions"] == 0 {
		t.Error("Expected position list above policy max to be rejected")
	}
}

func TestParsePositionsRoundTrip(t *testing.T) {
	positions, problems := ParsePositions("8, 18, 28")
	if len(problems) != 0 {
		t.Fatalf("Unexpected problems: %v", problems)
	}
	if len(positions) != 3 || positions[0] != 8 || positions[1] != 18 || positions[2] != 28 {
		t.Errorf("Expected [8 18 28], got %v", positions)
	}
	if got := NormalizePositions(positions); got != "8,18,28" {
		t.Errorf("Expected canonical form 8,18,28, got %q", got)
	}
}

func TestParsePositionsProblems(t *testing.T) {
	_, problems := ParsePositions("8,abc,18")
	if len(problems) != 1 || !strings.Contains(problems[0], "abc") {
		t.Errorf("Expected one problem naming the bad token, got %v", problems)
	}

	_, problems = ParsePositions("0,-3")
	if len(problems) != 2 {
		t.Errorf("Expected two problems for non-positive positions, got %v", problems)
	}
}
