package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/t-kuester/sokoban/internal/config"
	"github.com/t-kuester/sokoban/internal/levels"
	"github.com/t-kuester/sokoban/internal/sokoban"
	"github.com/t-kuester/sokoban/internal/storage"
)

// solveResultMsg carries the solver outcome back into the UI loop.
type solveResultMsg struct {
	plan sokoban.Plan
	err  error
}

// PlayModel is the Bubble Tea model for playing one level of a collection.
type PlayModel struct {
	collection levels.Collection
	index      int
	level      levels.Level
	state      sokoban.State

	history []sokoban.Move // applied moves, for undo and solution recording
	redo    []sokoban.Move

	mark        sokoban.State // marked position to return to
	markHistory []sokoban.Move
	hasMark     bool

	store *storage.Store // may be nil, progress is then not recorded
	cfg   config.Config
	keys  PlayKeyMap
	help  help.Model

	solving     bool
	cancelSolve context.CancelFunc
	pending     sokoban.Plan // remaining animated replay moves

	showDead bool
	status   string
	recorded bool
	width    int
	height   int

	quitting  bool
	goingBack bool
}

// NewPlayModel creates a play model for one level of the collection.
func NewPlayModel(coll levels.Collection, index int, store *storage.Store, cfg config.Config, width, height int) PlayModel {
	h := help.New()
	h.ShowAll = false

	m := PlayModel{
		collection: coll,
		store:      store,
		cfg:        cfg,
		keys:       DefaultPlayKeyMap(),
		help:       h,
		showDead:   cfg.UI.ShowDeadCells,
		width:      width,
		height:     height,
	}
	m.loadLevel(index)
	return m
}

// loadLevel resets the model to the start of the given level.
func (m *PlayModel) loadLevel(index int) {
	if index < 0 {
		index = 0
	}
	if index >= len(m.collection.Levels) {
		index = len(m.collection.Levels) - 1
	}
	m.stopSolver()
	m.index = index
	m.level = m.collection.Levels[index]
	m.state = m.level.Start
	m.history = nil
	m.redo = nil
	m.pending = nil
	m.hasMark = false
	m.markHistory = nil
	m.status = ""
	m.recorded = false
}

// Init initializes the play model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the play screen.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case solveResultMsg:
		m.solving = false
		m.cancelSolve = nil
		switch {
		case errors.Is(msg.err, sokoban.ErrCancelled):
			m.status = "solver stopped"
		case errors.Is(msg.err, sokoban.ErrNoSolution):
			m.status = "no solution from here"
		case msg.err != nil:
			m.status = fmt.Sprintf("solver failed: %v", msg.err)
		default:
			m.status = fmt.Sprintf("solution found: %d moves, %d pushes", len(msg.plan), msg.plan.Pushes())
			m.pending = msg.plan
			return m, animateCmd(m.cfg.UI.AnimationDelay())
		}
		return m, nil

	case AnimateMsg:
		if len(m.pending) == 0 {
			return m, nil
		}
		next, err := m.state.Apply(m.level.Grid, m.pending[0])
		if err != nil {
			// Player moved during the replay and invalidated the plan.
			m.pending = nil
			m.status = "replay aborted"
			return m, nil
		}
		m.state = next
		m.history = append(m.history, m.pending[0])
		m.pending = m.pending[1:]
		m.redo = nil
		if len(m.pending) > 0 {
			return m, animateCmd(m.cfg.UI.AnimationDelay())
		}
		return m, m.checkSolved(storage.SourceSolver)
	}
	return m, nil
}

func (m PlayModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopSolver()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.stopSolver()
		m.goingBack = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.DeadView):
		m.showDead = !m.showDead
		return m, nil

	case key.Matches(msg, m.keys.Mark):
		m.setMark()
		return m, nil

	case key.Matches(msg, m.keys.Return):
		m.returnToMark()
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.loadLevel(m.index)
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if m.index+1 < len(m.collection.Levels) {
			m.loadLevel(m.index + 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		if m.index > 0 {
			m.loadLevel(m.index - 1)
		}
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		m.undo()
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		return m, m.redoMove()

	case key.Matches(msg, m.keys.Solve):
		return m.toggleSolver()

	case key.Matches(msg, m.keys.Up):
		return m, m.move(sokoban.DirUp)
	case key.Matches(msg, m.keys.Down):
		return m, m.move(sokoban.DirDown)
	case key.Matches(msg, m.keys.Left):
		return m, m.move(sokoban.DirLeft)
	case key.Matches(msg, m.keys.Right):
		return m, m.move(sokoban.DirRight)
	}
	return m, nil
}

// move performs one directional player move. Moving by hand drops any
// animated replay still in flight.
func (m *PlayModel) move(d sokoban.Dir) tea.Cmd {
	if m.solving {
		return nil
	}
	m.pending = nil
	next, mv, err := m.state.MoveDir(m.level.Grid, d)
	if err != nil {
		return nil
	}
	m.state = next
	m.history = append(m.history, mv)
	m.redo = nil
	m.status = ""
	return m.checkSolved(storage.SourcePlayer)
}

func (m *PlayModel) undo() {
	if m.solving || len(m.history) == 0 {
		return
	}
	m.pending = nil
	last := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.state = m.state.Undo(m.level.Grid, last)
	m.redo = append(m.redo, last)
	m.status = ""
}

// setMark remembers the current position so the player can experiment
// and jump back with a single key instead of undoing move by move.
func (m *PlayModel) setMark() {
	if m.solving {
		return
	}
	m.mark = m.state
	m.markHistory = append([]sokoban.Move(nil), m.history...)
	m.hasMark = true
	m.status = "position marked"
}

func (m *PlayModel) returnToMark() {
	if m.solving || !m.hasMark {
		return
	}
	m.pending = nil
	m.state = m.mark
	m.history = append([]sokoban.Move(nil), m.markHistory...)
	m.redo = nil
	m.status = "returned to mark"
}

func (m *PlayModel) redoMove() tea.Cmd {
	if m.solving || len(m.redo) == 0 {
		return nil
	}
	last := m.redo[len(m.redo)-1]
	next, err := m.state.Apply(m.level.Grid, last)
	if err != nil {
		return nil
	}
	m.redo = m.redo[:len(m.redo)-1]
	m.state = next
	m.history = append(m.history, last)
	return m.checkSolved(storage.SourcePlayer)
}

// toggleSolver starts the solver in the background, or cancels a running one.
func (m PlayModel) toggleSolver() (tea.Model, tea.Cmd) {
	if m.solving {
		m.stopSolver()
		return m, nil
	}
	if m.state.Solved(m.level.Grid) {
		return m, nil
	}
	if max := m.cfg.Solver.MaxBoxes; max > 0 && m.state.Boxes.Len() > max {
		m.status = fmt.Sprintf("level has %d boxes, solver limit is %d", m.state.Boxes.Len(), max)
		return m, nil
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if timeout := m.cfg.Solver.Timeout(); timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	m.solving = true
	m.cancelSolve = cancel
	m.status = "solving..."

	g, s := m.level.Grid, m.state
	return m, func() tea.Msg {
		defer cancel()
		plan, err := sokoban.Solve(ctx, g, s)
		return solveResultMsg{plan: plan, err: err}
	}
}

func (m *PlayModel) stopSolver() {
	if m.cancelSolve != nil {
		m.cancelSolve()
		m.cancelSolve = nil
	}
	m.solving = false
}

// checkSolved records the finished level once and updates the status line.
func (m *PlayModel) checkSolved(source string) tea.Cmd {
	if !m.state.Solved(m.level.Grid) {
		return nil
	}
	plan := sokoban.Plan(m.history)
	m.status = fmt.Sprintf("solved in %d moves, %d pushes", len(plan), plan.Pushes())
	if m.store != nil && !m.recorded {
		m.recorded = true
		_, err := m.store.RecordSolve(storage.Solution{
			Collection: m.collection.ID,
			Level:      m.index,
			Moves:      plan.LURD(),
			MoveCount:  len(plan),
			PushCount:  plan.Pushes(),
			Source:     source,
		})
		if err != nil {
			m.status = fmt.Sprintf("solved, but progress not saved: %v", err)
		}
	}
	return nil
}

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	title := fmt.Sprintf("%s - level %d/%d", m.collection.Name, m.index+1, len(m.collection.Levels))
	if m.level.Title != "" {
		title += " (" + m.level.Title + ")"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(RenderBoard(m.level.Grid, m.state, BoardOptions{ShowDead: m.showDead}))
	b.WriteString("\n\n")

	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	plan := sokoban.Plan(m.history)
	b.WriteString(infoStyle.Render(fmt.Sprintf("moves %d  pushes %d", len(plan), plan.Pushes())))
	if m.status != "" {
		b.WriteString("\n")
		statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		b.WriteString(statusStyle.Render(m.status))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if the user wants to return to the browser.
func (m PlayModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// RunPlay runs the play screen standalone.
// Returns true if the user wants to go back to the browser, false if quitting.
func RunPlay(coll levels.Collection, index int, store *storage.Store, cfg config.Config) (goBack bool, err error) {
	model := NewPlayModel(coll, index, store, cfg, 80, 24)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := finalModel.(PlayModel); ok {
		return m.IsGoingBack(), nil
	}
	return false, nil
}
