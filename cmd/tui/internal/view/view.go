package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// SessionChangedMsg is pushed into the program whenever the session status
// transitions, including a 401 invalidation triggered by any request.
type SessionChangedMsg struct{}
