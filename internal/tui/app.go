package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matheuskafuri/hotwatch/internal/board"
	"github.com/matheuskafuri/hotwatch/internal/browser"
	"github.com/matheuskafuri/hotwatch/internal/export"
	"github.com/matheuskafuri/hotwatch/internal/trend"
)

const loadTimeout = 30 * time.Second

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeNormal mode = iota
	modeSearch
	modeHelp
)

type App struct {
	svc    *board.Service
	view   board.View
	cursor int
	focus  focusPane
	mode   mode

	width  int
	height int

	// Sub-components
	searchInput textinput.Model
	spinner     spinner.Model
	scope       scopeBar

	// State
	seq        uint64
	loaded     bool
	refreshing bool
	exportDir  string
	status     string
	err        error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Service *board.Service
	Top     int
	Keyword string
	// ExportDir is where e writes the CSV. Empty means the working directory.
	ExportDir string
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Filter titles..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100
	ti.SetValue(opts.Keyword)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		svc:         opts.Service,
		scope:       newScopeBar(opts.Top),
		searchInput: ti,
		spinner:     sp,
		exportDir:   opts.ExportDir,
		refreshing:  true,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.queryCmd(), a.spinner.Tick, a.ttlTick())
}

// queryCmd captures the current keyword into the closure to avoid races.
func (a *App) queryCmd() tea.Cmd {
	a.seq++
	seq := a.seq
	svc := a.svc
	keyword := a.searchInput.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		v, err := svc.Query(ctx, keyword)
		return viewLoadedMsg{seq: seq, view: v, err: err}
	}
}

func (a *App) refreshCmd() tea.Cmd {
	a.seq++
	seq := a.seq
	svc := a.svc
	keyword := a.searchInput.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		v, err := svc.Refresh(ctx, true)
		if keyword != "" {
			v.Dataset = trend.Filter(v.Dataset, keyword)
			v.Keyword = keyword
		}
		return viewLoadedMsg{seq: seq, view: v, err: err}
	}
}

func (a *App) ttlTick() tea.Cmd {
	return tea.Tick(a.svc.TTL(), func(t time.Time) tea.Msg {
		return ttlTickMsg(t)
	})
}

func (a *App) exportCmd() tea.Cmd {
	svc := a.svc
	ds := a.view.Dataset
	path := filepath.Join(a.exportDir, export.DefaultFilename)
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		if err := svc.ExportCSV(f, ds); err != nil {
			f.Close()
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path, err: f.Close()}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

// visible is the slice of the current view the list shows.
func (a *App) visible() []trend.Record {
	return a.view.Dataset.Top(a.scope.limit()).Records
}

func (a *App) selected() *trend.Record {
	rs := a.visible()
	if len(rs) == 0 || a.cursor >= len(rs) {
		return nil
	}
	return &rs[a.cursor]
}

func (a *App) clampCursor() {
	if n := len(a.visible()); a.cursor >= n {
		a.cursor = max(0, n-1)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky messages on any keypress
		a.err = nil
		a.status = ""
		return a.handleKey(msg)

	case viewLoadedMsg:
		if msg.seq != a.seq {
			// Superseded by a later load.
			return a, nil
		}
		a.refreshing = false
		a.loaded = true
		a.view = msg.view
		a.err = msg.err
		a.clampCursor()
		return a, nil

	case ttlTickMsg:
		if a.refreshing {
			return a, a.ttlTick()
		}
		// Query reloads only when the cached dataset has expired.
		return a, tea.Batch(a.queryCmd(), a.ttlTick())

	case exportDoneMsg:
		if msg.err != nil {
			a.err = fmt.Errorf("export: %w", msg.err)
			return a, nil
		}
		a.status = fmt.Sprintf("Exported %d entries to %s", a.view.Dataset.Len(), msg.path)
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.refreshing {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	switch a.mode {
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	// Normal mode
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.visible())-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "g", "home":
		a.cursor = 0
		return a, nil
	case "G", "end":
		a.cursor = max(0, len(a.visible())-1)
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if r := a.selected(); r != nil {
			return a, openBrowserCmd(r.Link)
		}
		return a, nil
	case "/":
		a.mode = modeSearch
		a.searchInput.Focus()
		return a, textinput.Blink
	case "t":
		a.scope.toggle()
		a.clampCursor()
		return a, nil
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, tea.Batch(a.refreshCmd(), a.spinner.Tick)
		}
		return a, nil
	case "e":
		if a.view.Dataset.Empty() {
			a.status = "Nothing to export"
			return a, nil
		}
		return a, a.exportCmd()
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.cursor = 0
		return a, a.queryCmd()
	case "enter":
		a.mode = modeNormal
		a.searchInput.Blur()
		a.cursor = 0
		return a, a.queryCmd()
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 {
		return headerStyle.Render("hotwatch")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	// Layout calculations
	headerHeight := 1
	scopeHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - scopeHeight - statusHeight - 4 // borders

	listWidth := int(float64(a.width) * 0.45)
	previewWidth := a.width - listWidth - 1 // gap

	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := headerStyle.Render("hotwatch")
	right := freshness(a.view)
	if a.view.State == board.Stale {
		right = staleStyle.Render("stale") + " · " + right
	}
	headerRight := headerDateStyle.Render(right)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	// Scope bar, replaced by the input while searching
	bar := a.scope.render(a.view.Keyword, a.width)
	if a.mode == modeSearch {
		bar = a.searchInput.View()
	}

	var content string
	if msg := notice(a.view); a.loaded && msg != "" {
		content = noticeStyle.Width(a.width).Height(contentHeight + 2).Render(lipglossCenter(msg, a.width, contentHeight))
	} else {
		innerListW := listWidth - 4
		listContent := renderList(a.visible(), a.cursor, contentHeight, innerListW)
		if !a.loaded {
			listContent = lipglossCenter(a.spinner.View()+" loading", innerListW, contentHeight)
		}

		listStyle, previewStyle := pane(a.focus == focusList), pane(a.focus == focusPreview)
		listPane := listStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

		previewContent := renderPreview(a.selected(), previewWidth-4, contentHeight)
		previewPane := previewStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)

		content = lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)
	}

	status := renderStatusBar(
		a.view,
		len(a.visible()),
		a.scope.label(),
		a.width,
		a.mode == modeSearch,
		a.refreshing,
	)

	if a.refreshing {
		status = a.spinner.View() + " " + status
	}

	switch {
	case a.err != nil:
		status = errorStyle.Render(a.err.Error())
	case a.status != "":
		status = statusBarStyle.Width(a.width).Render(a.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, content, status)
}

func (a *App) renderHelp() string {
	title := helpTitleStyle.Render("hotwatch")
	dim := helpDimStyle

	help := title + dim.Render("  keyboard shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move through the list\n" +
		"  g/G           Jump to first / last\n" +
		"  tab           Switch focus between list and preview\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open entry in browser\n" +
		"  r             Refetch now, ignoring the cache\n" +
		"  /             Filter titles by keyword\n" +
		"  t             Toggle top-N / all entries\n" +
		"  e             Export CSV\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
