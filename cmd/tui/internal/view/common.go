package view

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pocketbook/internal/client"
	"pocketbook/internal/client/store"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

const apiTimeout = 10 * time.Second

// APICtx returns a context with the standard timeout for API calls.
func APICtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
)

// ErrorText extracts a message fit for the status line. Server and validation
// failures carry their own text; everything else falls back to err.Error().
func ErrorText(err error) string {
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}

	var valErr *store.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}

	var transportErr *client.TransportError
	if errors.As(err, &transportErr) {
		return "could not reach the server"
	}

	return err.Error()
}
