package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/t-kuester/sokoban/internal/levels"
	"github.com/t-kuester/sokoban/internal/storage"
)

// Browser layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show collection sidebar
	sidebarWidth       = 20 // Width of collection sidebar
)

// BrowserModel is the Bubble Tea model for the level browser: collections on
// the side, levels with progress in a table.
type BrowserModel struct {
	collections []levels.Collection
	collCursor  int
	store       *storage.Store
	progress    map[int]storage.LevelProgress // level index -> progress
	table       table.Model
	help        help.Model
	keys        BrowserKeyMap
	width       int
	height      int
	quitting    bool
	selected    bool
	levelIndex  int
	showSidebar bool
}

// NewBrowserModel creates a browser over the given collections.
func NewBrowserModel(colls []levels.Collection, store *storage.Store, width, height int) BrowserModel {
	h := help.New()
	h.ShowAll = false

	m := BrowserModel{
		collections: colls,
		store:       store,
		keys:        DefaultBrowserKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	if len(colls) > 0 {
		m.loadProgress()
	}
	return m
}

// createTable creates the level table with appropriate columns.
func (m *BrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 7},
		{Title: "Title", Width: 20},
		{Title: "Status", Width: 8},
		{Title: "Best", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadProgress loads progress rows for the current collection.
func (m *BrowserModel) loadProgress() {
	m.progress = make(map[int]storage.LevelProgress)
	if m.store != nil {
		coll := m.collections[m.collCursor]
		rows, err := m.store.Progress(coll.ID)
		if err == nil {
			for _, p := range rows {
				m.progress[p.Level] = p
			}
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the current collection and progress.
func (m *BrowserModel) updateTableRows() {
	coll := m.collections[m.collCursor]
	rows := make([]table.Row, len(coll.Levels))
	for i, lvl := range coll.Levels {
		title := lvl.Title
		if title == "" {
			title = fmt.Sprintf("level %d", i+1)
		}
		status, best := "-", ""
		if p, ok := m.progress[i]; ok && p.Solved {
			status = "solved"
			best = fmt.Sprintf("%dm / %dp", p.BestMoves, p.BestPushes)
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			title,
			status,
			best,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the browser model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if len(m.collections) > 0 {
				m.selected = true
				m.levelIndex = m.table.Cursor()
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextColl):
			if len(m.collections) > 0 {
				m.collCursor = (m.collCursor + 1) % len(m.collections)
				m.loadProgress()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevColl):
			if len(m.collections) > 0 {
				m.collCursor--
				if m.collCursor < 0 {
					m.collCursor = len(m.collections) - 1
				}
				m.loadProgress()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
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

// View renders the browser.
func (m BrowserModel) View() string {
	if m.quitting || m.selected {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "SOKOBAN"
	if len(m.collections) > 0 {
		coll := m.collections[m.collCursor]
		title = fmt.Sprintf("SOKOBAN - %s (%d levels)", coll.Name, len(coll.Levels))
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the browser with a collection sidebar.
func (m BrowserModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Collections\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, c := range m.collections {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.collCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := c.Name
		maxLen := sidebarWidth - 6
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.table.View()),
	)
}

// renderNarrowLayout renders the browser with collection tabs above the table.
func (m BrowserModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.collections))
	for i, c := range m.collections {
		shortName := c.Name
		if len(shortName) > 10 {
			shortName = shortName[:9] + "."
		}
		if i == m.collCursor {
			tabs[i] = activeTabStyle.Render(shortName)
		} else {
			tabs[i] = tabStyle.Render(" " + shortName + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if len(tabLine) > m.width-4 && len(m.collections) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.collections[m.collCursor].Name)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))

	return b.String()
}

// Selection returns the chosen collection and level index, valid when the
// second return is true.
func (m BrowserModel) Selection() (levels.Collection, int, bool) {
	if !m.selected || len(m.collections) == 0 {
		return levels.Collection{}, 0, false
	}
	return m.collections[m.collCursor], m.levelIndex, true
}

// IsQuitting returns true if the user wants to quit entirely.
func (m BrowserModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers a possibly multi-line string in the given width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunBrowser runs the level browser standalone. The returned bool is false
// when the user quit without selecting a level.
func RunBrowser(colls []levels.Collection, store *storage.Store) (levels.Collection, int, bool, error) {
	model := NewBrowserModel(colls, store, 80, 24)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return levels.Collection{}, 0, false, err
	}
	m, ok := finalModel.(BrowserModel)
	if !ok {
		return levels.Collection{}, 0, false, nil
	}
	coll, idx, selected := m.Selection()
	return coll, idx, selected, nil
}
