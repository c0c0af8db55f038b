package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/hotwatch/internal/score"
	"github.com/matheuskafuri/hotwatch/internal/trend"
)

// scoreLine renders the second line of a list item: heat text and, when
// present, its label.
func scoreLine(r trend.Record) string {
	switch r.Kind {
	case score.Pinned:
		return itemPinnedStyle.Render(score.PinnedLabel)
	case score.Marker:
		return itemPinnedStyle.Render(r.DisplayScore)
	case score.Labeled:
		return itemScoreStyle.Render(fmt.Sprintf("%d", r.NumericScore)) + itemRankStyle.Render(" · "+r.Label)
	default:
		return itemScoreStyle.Render(r.DisplayScore)
	}
}

func renderListItem(r trend.Record, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	prefix := fmt.Sprintf("%2d. ", r.Rank)
	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + prefix + truncateStr(r.Title, width-6))
	} else {
		title = itemTitleStyle.Render("  " + prefix + truncateStr(r.Title, width-6))
	}

	meta := "      " + scoreLine(r)

	return title + "\n" + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(records []trend.Record, cursor int, height int, width int) string {
	if len(records) == 0 {
		return lipglossCenter("No entries", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start, end := window(len(records), cursor, visible)

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(records[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// window returns the [start, end) slice of n items that keeps cursor visible.
func window(n, cursor, visible int) (int, int) {
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > n {
		end = n
		start = end - visible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
