// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickdraw API server.

Quickdraw runs prize drawings over position-ordered entry feeds: organizers
open a drawing against a scope, people enter by posting into that scope, and
at draw time the engine picks winners either at random or by fixed entry
positions.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=quickdraw.db go run main.go

Or with flags:

	go run main.go -p 3319 -t sqlite -d quickdraw.db

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ORGANIZER_KEY_SALT (--organizer-salt): Secret for organizer key HMAC
  - ADMIN_TOKEN (--admin-token): Shared token for admin endpoints

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - MAX_WINNERS (--max-winners): Winner cap per drawing (default: 20)
  - MIN_PARTICIPANTS (--min-participants): Global floor (default: 2)
  - LOCK_DELAY_MINUTES (--lock-delay): Minutes until a drawing locks;
    0 locks at creation (default: 0)
  - EXCLUDED_GROUPS (--excluded-groups): Pipe-separated group names barred
    from winning
  - DRAWINGS_ENABLED (--enabled): Feature flag (default: true)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (drawings, scopes)
  - engine: the drawing lifecycle (eligibility, selection, settlement)
  - scheduler: background draw and lock sweeps
  - store: drawing and participant persistence
  - venue: scope and entry persistence plus side effects
  - notify: announcement and direct-message intents
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - validate: creation-time field validation
  - policy: site-wide drawing policy
  - auth: Token generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
