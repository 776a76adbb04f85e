package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"pocketbook/cmd/tui/internal/view"
	"pocketbook/internal/client"
	"pocketbook/internal/client/session"
	"pocketbook/internal/client/store"
	"pocketbook/internal/config"
)

type View int

const (
	ViewLogin View = iota
	ViewMenu
	ViewDashboard
	ViewCategories
)

type model struct {
	session *session.Manager
	txs     *store.Transactions
	cats    *store.Categories

	exportDir string

	currentView View

	loginView     view.LoginModel
	dashboardView view.DashboardModel
	categoryView  view.CategoriesModel
}

func initialModel(sess *session.Manager, txs *store.Transactions, cats *store.Categories, exportDir string) model {
	m := model{
		session:   sess,
		txs:       txs,
		cats:      cats,
		exportDir: exportDir,
		loginView: view.NewLoginModel(sess),
	}

	if sess.HasToken() {
		// The token still needs Resolve to confirm it; stay on the login
		// screen until the session transitions.
		m.currentView = ViewLogin
	}

	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loginView.Init()}

	if m.session.HasToken() {
		cmds = append(cmds, m.resolveCmd())
	}

	return tea.Batch(cmds...)
}

func (m model) resolveCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.APICtx()
		defer cancel()

		// Failures clear the session; the status change routes the UI.
		_ = m.session.Resolve(ctx)

		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case view.SessionChangedMsg:
		if m.session.Authenticated() {
			if m.currentView == ViewLogin {
				m.currentView = ViewMenu
			}

			return m, nil
		}

		// Logged out or invalidated from anywhere; back to the login screen.
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.session)

		return m, m.loginView.Init()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.txs, m.cats, m.exportDir)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewCategories
				m.categoryView = view.NewCategoriesModel(m.cats)

				return m, m.categoryView.Init()
			case "l":
				m.session.Logout()
				return m, nil
			}
		}

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewCategories:
		var newModel tea.Model
		newModel, cmd = m.categoryView.Update(msg)
		m.categoryView = newModel.(view.CategoriesModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		name := ""
		if u := m.session.User(); u != nil {
			name = u.FirstName
		}

		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf(
			"Pocketbook - hi %s\n\n"+
				"1. Transactions\n"+
				"2. Categories\n\n"+
				"l. Log out\n"+
				"q. Quit",
			name,
		))
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewCategories:
		return m.categoryView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	tokenFile, err := cfg.TokenFile()
	if err != nil {
		slog.Error("failed to resolve token path", "error", err)
		os.Exit(1)
	}

	c := client.New(cfg.API.BaseURL, client.WithTimeout(cfg.API.Timeout))
	sess := session.NewManager(c, session.NewFileStore(tokenFile))
	c.SetCredentials(sess)

	txs := store.NewTransactions(c)
	cats := store.NewCategories(c)

	p := tea.NewProgram(initialModel(sess, txs, cats, cfg.Client.ExportDir))

	// Session transitions come from outside the update loop too, e.g. a 401
	// on any request. Push them into the program as messages.
	sess.OnChange(func(session.Status) {
		p.Send(view.SessionChangedMsg{})
	})

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
