// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package venue adapts the place where qualifying entries live.

The engine only sees two small interfaces:

  - Venue: ListQualifyingEntries, FreezeSubmissions, ArchiveScope
  - Tagger: Retag (best-effort lifecycle labels)

SQLVenue implements both over the scope/entry tables, standing in for the
forum platform the original deployment delegated to. It also provides the
ingress side used by the HTTP handlers: EnsureScope, RecordEntry (assigns
sequence positions, starting at 2 behind the organizer's opening entry),
GetScope, and HideEntry for moderation.
*/
package venue
