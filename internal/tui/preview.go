package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/hotwatch/internal/score"
	"github.com/matheuskafuri/hotwatch/internal/trend"
)

func renderPreview(r *trend.Record, width, height int) string {
	if r == nil {
		return lipglossCenter("Select an entry", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(fmt.Sprintf("#%d  %s", r.Rank, r.Title))

	var heat string
	switch r.Kind {
	case score.Pinned:
		heat = "Pinned by the editors, no heat figure"
	case score.Marker:
		heat = fmt.Sprintf("Marker %q, ranked last", r.DisplayScore)
	default:
		heat = fmt.Sprintf("Heat %s", r.DisplayScore)
	}
	scoreLine := previewScoreStyle.Render(heat)

	details := []string{fmt.Sprintf("Kind:  %s", r.Kind)}
	if r.Label != "" {
		details = append(details, fmt.Sprintf("Label: %s", r.Label))
	}
	if r.Kind != score.Pinned && r.Kind != score.Marker {
		details = append(details, fmt.Sprintf("Sort:  %d", r.NumericScore))
	}
	body := previewBodyStyle.Width(contentWidth).Render(strings.Join(details, "\n"))

	link := previewLinkStyle.Width(contentWidth).Render("Open: " + r.Link)

	content := lipgloss.JoinVertical(lipgloss.Left, title, scoreLine, body, link)

	lines := strings.Split(content, "\n")
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}
