// Package tui provides the Bubble Tea integration for the game. It handles
// the terminal UI loop, input mapping and the level browser, and can serve
// the same interface over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// AnimateMsg is sent to advance an animated solution replay by one move.
type AnimateMsg time.Time

// animateCmd returns a Bubble Tea command that sends the next animation step
// after the configured delay.
func animateCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return AnimateMsg(t)
	})
}
