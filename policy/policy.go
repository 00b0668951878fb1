// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package policy

import (
	"strings"

	"github.com/danielhkuo/quickdraw/cliparse"
)

// Policy holds the global limits every drawing is validated and drawn
// against. A Policy value is immutable once handed out.
type Policy struct {
	Enabled          bool
	MaxWinners       int
	MinParticipants  int
	LockDelayMinutes int
	ExcludedGroups   []string
}

// IsExcludedGroup reports whether any of the given group memberships is
// globally excluded from participating.
func (p Policy) IsExcludedGroup(groups []string) bool {
	if len(p.ExcludedGroups) == 0 {
		return false
	}
	for _, g := range groups {
		for _, excluded := range p.ExcludedGroups {
			if g == excluded {
				return true
			}
		}
	}
	return false
}

// Provider supplies the current policy. The engine and validation gate take
// a Provider rather than raw values so policy changes need no re-wiring.
type Provider interface {
	Current() Policy
}

// Static is a Provider that always returns the same policy. It is the
// production implementation; tests build their own.
type Static struct {
	P Policy
}

func (s Static) Current() Policy { return s.P }

// FromConfig builds the static provider used in production from the
// parsed configuration.
func FromConfig(cfg cliparse.Config) Static {
	var groups []string
	for _, g := range strings.Split(cfg.ExcludedGroups, "|") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return Static{P: Policy{
		Enabled:          cfg.Enabled,
		MaxWinners:       cfg.MaxWinners,
		MinParticipants:  cfg.MinParticipants,
		LockDelayMinutes: cfg.LockDelayMinutes,
		ExcludedGroups:   groups,
	}}
}
