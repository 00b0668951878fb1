// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify builds and delivers announcement and notification intents.

The engine decides what to announce; this package decides how it reads.
Delivery is fire-and-forget: a failed or slow notifier never rolls back a
drawing's committed state transition.

Message builders are pure functions (WinnerAnnouncement,
CancellationAnnouncement, WinnerMessage, LockNotification), so tests can
assert on exact text. LogNotifier is the default sink.
*/
package notify
