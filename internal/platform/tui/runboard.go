package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rocket-arcade/internal/registry"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

const (
	minWidthForSidebar = 96
	sidebarWidth       = 20
	maxRuns            = 100
)

var (
	boardBorder = lipgloss.Color("240")
	boardAccent = lipgloss.Color("229")
	boardPick   = lipgloss.Color("57")

	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(boardBorder).Padding(0, 1)
	boardEmptyStyle = menuDimStyle.Italic(true).Padding(2, 4)
	boardTabStyle   = menuDimStyle.Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(boardAccent).Background(boardPick).Padding(0, 1)
	boardActiveRow  = lipgloss.NewStyle().Bold(true).Foreground(boardAccent)
)

// RunBoardKeyMap defines the key bindings for the run board.
type RunBoardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Next     key.Binding
	Prev     key.Binding
	ToggleBy key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.ToggleBy, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.ToggleBy, k.Back, k.Quit},
	}
}

// DefaultRunBoardKeyMap returns default key bindings.
func DefaultRunBoardKeyMap() RunBoardKeyMap {
	return RunBoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scenario"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scenario"),
		),
		ToggleBy: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "top/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunBoardModel is the Bubble Tea model for browsing recorded runs.
type RunBoardModel struct {
	scenarios   []registry.Info
	cursor      int
	store       *storage.Store
	runs        []storage.RunRecord
	stats       *storage.ScenarioStats
	recent      bool // list newest runs instead of best
	table       table.Model
	help        help.Model
	keys        RunBoardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunBoardModel creates a new run board. store may be nil.
func NewRunBoardModel(store *storage.Store, width, height int) RunBoardModel {
	h := help.New()
	h.ShowAll = false

	m := RunBoardModel{
		scenarios:   registry.List(),
		store:       store,
		keys:        DefaultRunBoardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized for the current window.
func (m *RunBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Wave", Width: 5},
		{Title: "Kills", Width: 6},
		{Title: "Time", Width: 6},
		{Title: "From", Width: 5},
		{Title: "Date", Width: 12},
	}

	// Title, stats, help and the frame take ten lines
	height := max(m.height-10, 3)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).BorderForeground(boardBorder).BorderBottom(true)
	styles.Selected = styles.Selected.Bold(false).Foreground(boardAccent).Background(boardPick)
	t.SetStyles(styles)

	return t
}

// current returns the selected scenario ID.
func (m *RunBoardModel) current() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	return m.scenarios[m.cursor].ID
}

// load fetches runs and stats for the selected scenario. Store errors
// show up as an empty board.
func (m *RunBoardModel) load() {
	m.runs = nil
	m.stats = nil
	if m.store != nil && len(m.scenarios) > 0 {
		id := m.current()
		var err error
		if m.recent {
			m.runs, err = m.store.RecentRuns(id, maxRuns)
		} else {
			m.runs, err = m.store.TopRuns(id, maxRuns)
		}
		if err != nil {
			m.runs = nil
		}
		if st, err := m.store.ScenarioStats(id); err == nil {
			m.stats = st
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *RunBoardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = runRow(i+1, r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func runRow(rank int, r storage.RunRecord) table.Row {
	return table.Row{
		fmt.Sprintf("%d", rank),
		fmt.Sprintf("%d", r.Score),
		fmt.Sprintf("%d", r.Wave),
		fmt.Sprintf("%d", r.Kills),
		formatDuration(r.DurationMs),
		r.Source,
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// formatDuration renders simulated milliseconds as m:ss.
func formatDuration(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (m *RunBoardModel) step(delta int) {
	if len(m.scenarios) == 0 {
		return
	}
	n := len(m.scenarios)
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.load()
}

// Init initializes the run board.
func (m RunBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run board.
func (m RunBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil

		case key.Matches(msg, m.keys.ToggleBy):
			m.recent = !m.recent
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run board.
func (m RunBoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	body := lipgloss.JoinVertical(lipgloss.Left, m.tabLine(), "", m.renderTable())
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", m.renderTable())
	}

	return strings.Join([]string{
		centerText(menuTitleStyle.Render(m.title()), m.width),
		centerText(menuDimStyle.Render(m.statsLine()), m.width),
		"",
		body,
		menuDimStyle.Render(m.help.View(m.keys)),
	}, "\n")
}

func (m RunBoardModel) title() string {
	if len(m.scenarios) == 0 {
		return "RUNS"
	}
	order := "TOP"
	if m.recent {
		order = "RECENT"
	}
	return fmt.Sprintf("%s RUNS - %s", order, m.scenarios[m.cursor].Title)
}

// statsLine summarizes the selected scenario.
func (m RunBoardModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return "no runs yet"
	}
	return fmt.Sprintf("%d runs  best %d  avg %.0f  best wave %d  kills %d",
		m.stats.Runs, m.stats.BestScore, m.stats.AvgScore, m.stats.BestWave, m.stats.TotalKills)
}

// sidebar lists every scenario, marking the selected one.
func (m RunBoardModel) sidebar() string {
	lines := []string{"Scenarios", strings.Repeat("-", sidebarWidth-4)}
	for i, sc := range m.scenarios {
		name := truncate(sc.Title, sidebarWidth-6)
		if i == m.cursor {
			lines = append(lines, boardActiveRow.Render("> "+name))
			continue
		}
		lines = append(lines, "  "+name)
	}
	return boardFrameStyle.Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

// tabLine shows the scenarios as tabs, or just the selected one between
// arrows when the tabs do not fit.
func (m RunBoardModel) tabLine() string {
	if len(m.scenarios) == 0 {
		return ""
	}
	tabs := make([]string, len(m.scenarios))
	for i, sc := range m.scenarios {
		style := boardTabStyle
		if i == m.cursor {
			style = boardActiveTab
		}
		tabs[i] = style.Render(truncate(sc.Title, 10))
	}

	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = fmt.Sprintf("< %s >", m.scenarios[m.cursor].Title)
	}
	return centerText(line, m.width)
}

func (m RunBoardModel) renderTable() string {
	if len(m.runs) == 0 {
		return boardFrameStyle.Render(boardEmptyStyle.Render(
			"No runs recorded yet.\nPlay or simulate one to fill the board!"))
	}
	return boardFrameStyle.Render(m.table.View())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to the menu.
func (m RunBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunBoardModel) IsQuitting() bool {
	return m.quitting
}

// RunRunBoard runs the board as its own program.
// Returns true if user wants to go back to the menu, false if quitting.
func RunRunBoard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewRunBoardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(RunBoardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
