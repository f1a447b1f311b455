package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/t-kuester/sokoban/internal/sokoban"
)

// cellStyle identifies the visual class of a board cell. Styles themselves
// are not comparable, so runs are grouped by this identifier instead.
type cellStyle int

const (
	styleWall cellStyle = iota
	styleFloor
	styleGoal
	styleBox
	styleBoxDone
	stylePlayer
	styleDead
)

// Board styles, indexed by cellStyle. Each cell renders as two characters so
// the board keeps roughly square proportions in a terminal.
var cellStyles = [...]lipgloss.Style{
	styleWall:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	styleFloor:   lipgloss.NewStyle(),
	styleGoal:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	styleBox:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	styleBoxDone: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	stylePlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	styleDead:    lipgloss.NewStyle().Foreground(lipgloss.Color("52")),
}

// BoardOptions control optional board decorations.
type BoardOptions struct {
	ShowDead bool // shade cells a box must never be pushed onto
}

// RenderBoard draws the level with the current state as a styled string.
// Runs of cells with the same style are grouped to keep the output small.
func RenderBoard(g *sokoban.Grid, s sokoban.State, opts BoardOptions) string {
	var sb strings.Builder
	sb.Grow(g.Width() * g.Height() * 4)

	for row := 0; row < g.Height(); row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}
		var (
			run   strings.Builder
			style cellStyle
			open  bool
		)
		flush := func() {
			if open {
				sb.WriteString(cellStyles[style].Render(run.String()))
				run.Reset()
				open = false
			}
		}
		for col := 0; col < g.Width(); col++ {
			sym, st := cellSymbol(g, s, sokoban.At(row, col), opts)
			if open && st != style {
				flush()
			}
			style = st
			open = true
			run.WriteString(sym)
		}
		flush()
	}
	return sb.String()
}

func cellSymbol(g *sokoban.Grid, s sokoban.State, c sokoban.Cell, opts BoardOptions) (string, cellStyle) {
	switch {
	case s.Player == c:
		if g.IsGoal(c) {
			return "@.", stylePlayer
		}
		return "@ ", stylePlayer
	case s.Boxes.Has(c):
		if g.IsGoal(c) {
			return "[]", styleBoxDone
		}
		return "[]", styleBox
	}
	switch g.Kind(c) {
	case sokoban.Wall:
		return "##", styleWall
	case sokoban.Goal:
		return " .", styleGoal
	default:
		if opts.ShowDead && g.IsDead(c) {
			return " x", styleDead
		}
		return "  ", styleFloor
	}
}
