// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package policy

import (
	"testing"

	"github.com/danielhkuo/quickdraw/cliparse"
)

func TestIsExcludedGroup(t *testing.T) {
	p := Policy{ExcludedGroups: []string{"staff", "bots"}}

	if !p.IsExcludedGroup([]string{"members", "bots"}) {
		t.Error("Expected membership in an excluded group to match")
	}
	if p.IsExcludedGroup([]string{"members"}) {
		t.Error("Expected non-excluded groups not to match")
	}
	if p.IsExcludedGroup(nil) {
		t.Error("Expected no groups not to match")
	}

	empty := Policy{}
	if empty.IsExcludedGroup([]string{"staff"}) {
		t.Error("Expected empty exclusion list to match nothing")
	}
}

func TestFromConfig(t *testing.T) {
	prov := FromConfig(cliparse.Config{
		Enabled:          true,
		MaxWinners:       10,
		MinParticipants:  3,
		LockDelayMinutes: 15,
		ExcludedGroups:   "staff| bots |",
	})

	p := prov.Current()
	if p.MaxWinners != 10 || p.MinParticipants != 3 || p.LockDelayMinutes != 15 {
		t.Errorf("Unexpected policy values: %+v", p)
	}
	if len(p.ExcludedGroups) != 2 || p.ExcludedGroups[0] != "staff" || p.ExcludedGroups[1] != "bots" {
		t.Errorf("Expected trimmed group list [staff bots], got %v", p.ExcludedGroups)
	}
}
