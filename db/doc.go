// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema

CreateSchema creates all tables if they don't exist:

  - scope: venue threads (frozen/archived flags, tag)
  - entry: qualifying actions within a scope
  - drawing: drawing configuration and runtime state
  - participant: the eligible set captured at draw time

# Portability

The same schema runs on PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite):
flags are INTEGER 0/1 columns and every timestamp is written explicitly by
the application, never by a database default.

# Usage

	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
*/
package db
