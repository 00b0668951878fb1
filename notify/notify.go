// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickdraw/models"
)

// Notifier delivers announcement and notification intents. Calls are
// fire-and-forget from the engine's perspective: implementations must not
// block on delivery, and failures are logged rather than propagated.
type Notifier interface {
	Announce(ctx context.Context, scopeID, message string)
	NotifyUser(ctx context.Context, userID, message string)
}

// LogNotifier writes every intent to the structured log. It is the default
// delivery mechanism; a real deployment swaps in a forum or chat adapter.
type LogNotifier struct{}

func (LogNotifier) Announce(ctx context.Context, scopeID, message string) {
	slog.Info("announcement", "scope_id", scopeID, "message", message)
}

func (LogNotifier) NotifyUser(ctx context.Context, userID, message string) {
	slog.Info("user notification", "user_id", userID, "message", message)
}

// WinnerAnnouncement builds the public result message for a finished
// drawing. A finished drawing can have zero winners when the backup policy
// proceeded with nobody eligible; the announcement says so explicitly.
func WinnerAnnouncement(d *models.Drawing, winners []models.WinnerInfo, totalParticipants int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The drawing %q has been drawn %s.\n", d.Name, humanize.Time(d.DrawTime))

	if len(winners) == 0 {
		fmt.Fprintf(&b, "No eligible participants entered, so there are no winners.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Prize: %s\nWinners:\n", d.PrizeDescription)
	for _, w := range winners {
		fmt.Fprintf(&b, "- @%s (#%d)\n", w.Username, w.Position)
	}
	fmt.Fprintf(&b, "Out of %s.\n", plural(totalParticipants, "participant"))
	return b.String()
}

// CancellationAnnouncement builds the public message for a cancelled
// drawing.
func CancellationAnnouncement(d *models.Drawing, reason string, totalParticipants int) string {
	return fmt.Sprintf("The drawing %q has been cancelled.\nReason: %s\n%s had entered.\n",
		d.Name, reason, plural(totalParticipants, "participant"))
}

// WinnerMessage builds the private message for one winner.
func WinnerMessage(d *models.Drawing, w models.WinnerInfo) string {
	return fmt.Sprintf("Congratulations @%s! You won %q (entry #%d).\nPrize: %s\n",
		w.Username, d.Name, w.Position, d.PrizeDescription)
}

// LockNotification builds the organizer's heads-up when a drawing locks.
func LockNotification(d *models.Drawing) string {
	return fmt.Sprintf("Your drawing %q is now locked: no further entries will be honored.\nThe draw happens %s.\n",
		d.Name, humanize.Time(d.DrawTime))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(int64(n)), noun)
}
