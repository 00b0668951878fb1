// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabaseURL: Connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - OrganizerKeySalt: Secret for organizer key HMAC (required)
  - AdminToken: Bearer token for admin operations (required)
  - MaxWinners / MinParticipants / LockDelayMinutes / ExcludedGroups:
    global drawing policy
  - DrawInterval / LockInterval: scheduler sweep cadence
  - Enabled: feature flag; schedulers and creation are off when false

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	ORGANIZER_KEY_SALT → --organizer-salt
	ADMIN_TOKEN        → --admin-token
	MAX_WINNERS        → --max-winners
	MIN_PARTICIPANTS   → --min-participants
	LOCK_DELAY_MINUTES → --lock-delay
	EXCLUDED_GROUPS    → --excluded-groups
	DRAW_INTERVAL      → --draw-interval
	LOCK_INTERVAL      → --lock-interval
	DRAWINGS_ENABLED   → --enabled

CLI flags take precedence over environment variables.
*/
package cliparse
