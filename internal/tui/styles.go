package tui

import "github.com/charmbracelet/lipgloss"

// Heat palette: warm tones for ranked entries, muted greys for chrome.
var (
	heatRed    = lipgloss.AdaptiveColor{Light: "#C92A2A", Dark: "#FF6B6B"}
	heatOrange = lipgloss.AdaptiveColor{Light: "#D9480F", Dark: "#FF922B"}
	heatAmber  = lipgloss.AdaptiveColor{Light: "#E67700", Dark: "#FCC419"}
	heatMint   = lipgloss.AdaptiveColor{Light: "#2B8A3E", Dark: "#69DB7C"}
	inkStrong  = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#E9ECEF"}
	inkSoft    = lipgloss.AdaptiveColor{Light: "#495057", Dark: "#ADB5BD"}
	inkFaint   = lipgloss.AdaptiveColor{Light: "#ADB5BD", Dark: "#5C5F66"}
	chrome     = lipgloss.AdaptiveColor{Light: "#F1F3F5", Dark: "#25262B"}
	chromeEdge = lipgloss.AdaptiveColor{Light: "#DEE2E6", Dark: "#373A40"}
)

// pane frames the list and preview; the focused one takes the heat color.
func pane(focused bool) lipgloss.Style {
	edge := lipgloss.TerminalColor(chromeEdge)
	if focused {
		edge = heatOrange
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(edge)
}

func tab(active bool) lipgloss.Style {
	if active {
		return lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).Background(heatOrange)
	}
	return lipgloss.NewStyle().Padding(0, 1).Foreground(inkSoft).Background(chrome)
}

var (
	fg   = func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	bold = func(c lipgloss.TerminalColor) lipgloss.Style { return fg(c).Bold(true) }

	headerStyle     = bold(heatRed).PaddingLeft(1)
	headerDateStyle = fg(inkFaint).Align(lipgloss.Right)

	itemTitleStyle    = fg(inkStrong)
	itemSelectedStyle = bold(heatRed)
	itemScoreStyle    = fg(heatMint)
	itemPinnedStyle   = fg(heatAmber).Italic(true)
	itemRankStyle     = fg(inkFaint)

	previewTitleStyle = bold(heatOrange).MarginBottom(1)
	previewScoreStyle = fg(heatMint).MarginBottom(1)
	previewBodyStyle  = fg(inkSoft)
	previewLinkStyle  = fg(inkFaint).Italic(true).MarginTop(1)

	scopeBarStyle     = lipgloss.NewStyle().Background(chrome).PaddingLeft(1)
	tabSeparatorStyle = fg(inkFaint)
	searchPromptStyle = bold(heatRed)

	statusBarStyle = fg(inkSoft).Background(chrome).Padding(0, 1)
	staleStyle     = bold(heatAmber)
	errorStyle     = fg(heatRed)
	spinnerStyle   = fg(heatRed)
	noticeStyle    = fg(inkSoft).Align(lipgloss.Center)

	helpTitleStyle = bold(heatRed)
	helpDimStyle   = fg(inkFaint)
	helpCardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(chromeEdge).Padding(1, 3)
)
