package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/matheuskafuri/hotwatch/internal/board"
)

func renderStatusBar(v board.View, shown int, scope string, width int, searching bool, refreshing bool) string {
	left := fmt.Sprintf(" %d of %d entries · %s", shown, v.Dataset.Len(), scope)
	if v.Keyword != "" {
		left += fmt.Sprintf(" · %q", v.Keyword)
	}
	if v.Dataset.Anomalies > 0 {
		left += fmt.Sprintf(" · %d unscored", v.Dataset.Anomalies)
	}
	if v.State == board.Stale {
		left += " · " + staleStyle.Render("stale")
	}

	right := " / search  t scope  r refresh  e export  ? help  q quit "

	if searching {
		right = " esc cancel  enter search "
	}
	if refreshing {
		left += " (refreshing...)"
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

// freshness is the header's right-hand text.
func freshness(v board.View) string {
	if v.FetchedAt.IsZero() {
		return "not loaded"
	}
	return "updated " + humanize.RelTime(v.FetchedAt, time.Now(), "ago", "from now")
}

// notice explains views that have no rows to show.
func notice(v board.View) string {
	switch {
	case v.State == board.Unavailable:
		return "Could not reach the source. Press r to retry."
	case v.State == board.Empty:
		return "No trending entries on the page right now (possibly a visitor check)."
	case v.Keyword != "" && v.Dataset.Empty():
		return fmt.Sprintf("No entries match %q", v.Keyword)
	}
	return ""
}
