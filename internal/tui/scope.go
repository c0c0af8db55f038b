package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// scopeBar switches between the leading slice of the board and the full list.
type scopeBar struct {
	top int
	all bool
}

func newScopeBar(top int) scopeBar {
	return scopeBar{top: top}
}

func (s *scopeBar) toggle() {
	s.all = !s.all
}

// limit is the argument to trend.Dataset.Top for the active scope.
func (s scopeBar) limit() int {
	if s.all {
		return 0
	}
	return s.top
}

func (s scopeBar) label() string {
	if s.all {
		return "All"
	}
	return fmt.Sprintf("Top %d", s.top)
}

func (s scopeBar) render(keyword string, width int) string {
	sep := tabSeparatorStyle.Render(" · ")

	row := tab(!s.all).Render(fmt.Sprintf("Top %d", s.top)) + sep + tab(s.all).Render("All")
	if keyword != "" {
		kw := searchPromptStyle.Render("/ ") + keyword
		if lipgloss.Width(row+sep+kw) <= width {
			row += sep + kw
		}
	}

	return scopeBarStyle.Width(width).Render(row)
}
