// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. ID identifies the tick
// chain; ticks from an abandoned game or a finished round are ignored.
type TickMsg struct {
	ID   int
	Time time.Time
}

var lastTickID atomic.Int64

// nextTickID returns a tick chain ID unique within the process.
func nextTickID() int {
	return int(lastTickID.Add(1))
}

// tickCmd schedules a single tick after period. The model re-arms it after
// each tick, so a slow frame delays the next tick instead of queueing extras.
func tickCmd(id int, period time.Duration) tea.Cmd {
	return tea.Tick(period, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
