package view

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"pocketbook/internal/api"
	"pocketbook/internal/client/store"
	"pocketbook/internal/dates"
)

type categoriesState int

const (
	categoriesStateBrowse categoriesState = iota
	categoriesStateCreate
)

type CategoriesModel struct {
	CommonModel
	cats *store.Categories

	state categoriesState
	table table.Model
	items []api.Category
	form  *huh.Form

	formName string
	loading  bool
	errText  string
	status   string
}

func NewCategoriesModel(cats *store.Categories) CategoriesModel {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Created", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return CategoriesModel{cats: cats, table: t, loading: true}
}

func (m CategoriesModel) Title() string { return "Categories" }

func (m CategoriesModel) ShortHelp() string {
	if m.state == categoriesStateCreate {
		return "enter: save | esc: cancel"
	}

	return "esc: back | n: new | d: delete | r: refresh"
}

func (m CategoriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

type categoriesLoadMsg struct {
	cats []api.Category
	err  error
}

type categoriesSaveMsg struct {
	err error
}

type categoriesDeleteMsg struct {
	err error
}

func (m CategoriesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		cats, err := m.cats.Load(ctx, store.ListOptions{})

		return categoriesLoadMsg{cats: cats, err: err}
	}
}

func (m CategoriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case categoriesLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = ErrorText(msg.err)
			return m, nil
		}

		m.errText = ""
		m.items = msg.cats
		m.refreshTable()

		return m, nil

	case categoriesSaveMsg:
		m.state = categoriesStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = errStyle.Render(ErrorText(msg.err))
			return m, nil
		}

		m.status = "Saved"

		return m, m.loadCmd()

	case categoriesDeleteMsg:
		if msg.err != nil {
			m.status = errStyle.Render(ErrorText(msg.err))
			return m, nil
		}

		// Transactions that pointed at the deleted category are now
		// uncategorized server-side; the next dashboard load reflects it.
		m.status = "Deleted"

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case categoriesStateBrowse:
		return m.updateBrowse(msg)
	case categoriesStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m CategoriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "n":
			m.formName = ""
			m.form = huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Key("name").
						Title("Category name").
						Value(&m.formName).
						Validate(notBlank("name")),
				),
			).WithWidth(40).WithShowHelp(false)

			m.state = categoriesStateCreate
			m.table.Blur()

			return m, m.form.Init()
		case "d":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.items) {
				return m, m.deleteCmd(m.items[idx].ID)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m CategoriesModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = categoriesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// The Value binding points into an earlier copy of this model; read the
	// completed input back off the shared form.
	name := m.form.GetString("name")

	return m, func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		_, err := m.cats.Create(ctx, name)

		return categoriesSaveMsg{err: err}
	}
}

func (m CategoriesModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return categoriesDeleteMsg{err: m.cats.Delete(ctx, id)}
	}
}

func (m *CategoriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, c := range m.items {
		rows = append(rows, table.Row{c.Name, dates.FormatDate(c.CreatedAt)})
	}

	m.table.SetRows(rows)
}

func (m CategoriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading categories...")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Categories"),
		tableView,
		faintStyle.Render(m.ShortHelp()),
	)

	if m.state == categoriesStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render("New Category\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.errText != "" {
		content = errStyle.Render(m.errText) + "\n" + content
	} else if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
