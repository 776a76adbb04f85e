package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"pocketbook/internal/api"
	"pocketbook/internal/client/store"
	"pocketbook/internal/dates"
	"pocketbook/internal/export"
	"pocketbook/internal/money"
)

type dashState int

const (
	dashStateBrowse dashState = iota
	dashStateForm
)

type DashboardModel struct {
	CommonModel
	txs  *store.Transactions
	cats *store.Categories

	state dashState
	table table.Model

	items      []api.Transaction
	categories []api.Category

	// filterIdx indexes the cycling category filter: 0 all, 1 uncategorized,
	// then one slot per loaded category.
	filterIdx int

	form    *huh.Form
	editing *uuid.UUID // nil while creating

	formDesc     string
	formAmount   string
	formType     string
	formCategory string // category id string, "" = none
	formDate     string

	exportDir string
	loading   bool
	errText   string
	status    string
}

func NewDashboardModel(txs *store.Transactions, cats *store.Categories, exportDir string) DashboardModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 36},
		{Title: "Category", Width: 18},
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

	return DashboardModel{txs: txs, cats: cats, table: t, exportDir: exportDir, loading: true}
}

func (m DashboardModel) Title() string { return "Transactions" }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashStateForm {
		return "Navigate form | esc: cancel"
	}

	return "esc: back | n: new | e: edit | d: delete | c: category filter | x: export | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.loadCategoriesCmd())
}

// Messages

type dashLoadMsg struct {
	txs []api.Transaction
	err error
}

type dashCategoriesMsg struct {
	cats []api.Category
	err  error
}

type dashSaveMsg struct {
	err error
}

type dashDeleteMsg struct {
	err error
}

type dashExportMsg struct {
	path string
	err  error
}

func (m DashboardModel) filter() store.TransactionFilter {
	f := store.TransactionFilter{Category: store.AllCategories()}

	switch {
	case m.filterIdx == 1:
		f.Category = store.Uncategorized()
	case m.filterIdx >= 2 && m.filterIdx-2 < len(m.categories):
		f.Category = store.OneCategory(m.categories[m.filterIdx-2].ID)
	}

	return f
}

func (m DashboardModel) filterLabel() string {
	switch {
	case m.filterIdx == 1:
		return "Uncategorized"
	case m.filterIdx >= 2 && m.filterIdx-2 < len(m.categories):
		return m.categories[m.filterIdx-2].Name
	}

	return "All"
}

func (m DashboardModel) loadCmd() tea.Cmd {
	filter := m.filter()

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		txs, err := m.txs.Load(ctx, filter)

		return dashLoadMsg{txs: txs, err: err}
	}
}

func (m DashboardModel) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		cats, err := m.cats.Load(ctx, store.ListOptions{})

		return dashCategoriesMsg{cats: cats, err: err}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.errText = ErrorText(msg.err)
			return m, nil
		}

		m.errText = ""
		m.items = msg.txs
		m.refreshTable()

		return m, nil

	case dashCategoriesMsg:
		if msg.err != nil {
			m.errText = ErrorText(msg.err)
			return m, nil
		}

		m.categories = msg.cats
		if m.filterIdx >= len(m.categories)+2 {
			m.filterIdx = 0
		}

		return m, nil

	case dashSaveMsg:
		m.state = dashStateBrowse
		m.form = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = errStyle.Render(ErrorText(msg.err))
			return m, nil
		}

		m.status = "Saved"

		return m, m.loadCmd()

	case dashDeleteMsg:
		if msg.err != nil {
			m.status = errStyle.Render(ErrorText(msg.err))
			return m, nil
		}

		m.status = "Deleted"

		return m, m.loadCmd()

	case dashExportMsg:
		if msg.err != nil {
			m.status = errStyle.Render(ErrorText(msg.err))
			return m, nil
		}

		m.status = "Exported to " + msg.path

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case dashStateBrowse:
		return m.updateBrowse(msg)
	case dashStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			m.status = ""

			return m, tea.Batch(m.loadCmd(), m.loadCategoriesCmd())
		case "c":
			m.filterIdx = (m.filterIdx + 1) % (len(m.categories) + 2)
			m.loading = true

			return m, m.loadCmd()
		case "n":
			return m.enterForm(nil)
		case "e":
			if tx := m.selected(); tx != nil {
				return m.enterForm(tx)
			}

			return m, nil
		case "d":
			if tx := m.selected(); tx != nil {
				return m, m.deleteCmd(tx.ID)
			}

			return m, nil
		case "x":
			return m, m.exportCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) selected() *api.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}

	return &m.items[idx]
}

func (m DashboardModel) enterForm(tx *api.Transaction) (tea.Model, tea.Cmd) {
	if tx == nil {
		m.editing = nil
		m.formDesc = ""
		m.formAmount = ""
		m.formType = string(api.TypeExpense)
		m.formCategory = ""
		m.formDate = dates.FormatDate(time.Now())
	} else {
		id := tx.ID
		m.editing = &id
		m.formDesc = tx.Description
		m.formAmount = money.Format(tx.Amount)
		m.formType = string(tx.Type)
		m.formCategory = ""

		if tx.CategoryID != nil {
			m.formCategory = tx.CategoryID.String()
		}

		m.formDate = dates.FormatDate(tx.Date)
	}

	categoryOptions := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range m.categories {
		categoryOptions = append(categoryOptions, huh.NewOption(c.Name, c.ID.String()))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc).
				Validate(notBlank("description")),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := money.Parse(s); err != nil {
						return fmt.Errorf("enter a positive amount like 12.50")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", string(api.TypeExpense)),
					huh.NewOption("Income", string(api.TypeIncome)),
				).
				Value(&m.formType),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := dates.ParseDate(s); err != nil {
						return fmt.Errorf("enter a date like 2026-03-14")
					}
					return nil
				}),
		),
	).WithWidth(44).WithShowHelp(false)

	m.state = dashStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m DashboardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = dashStateBrowse
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

	// The Value bindings point into an earlier copy of this model; read the
	// completed inputs back off the shared form.
	m.formDesc = m.form.GetString("description")
	m.formAmount = m.form.GetString("amount")
	m.formType = m.form.GetString("type")
	m.formCategory = m.form.GetString("category")
	m.formDate = m.form.GetString("date")

	return m, m.saveCmd()
}

func (m DashboardModel) saveCmd() tea.Cmd {
	var categoryID *uuid.UUID

	if m.formCategory != "" {
		if id, err := uuid.Parse(m.formCategory); err == nil {
			categoryID = &id
		}
	}

	date, err := dates.ParseDate(m.formDate)
	if err != nil {
		return func() tea.Msg { return dashSaveMsg{err: err} }
	}

	input := store.TransactionInput{
		Description: m.formDesc,
		Amount:      m.formAmount,
		Type:        api.TransactionType(m.formType),
		CategoryID:  categoryID,
		Date:        date,
	}
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if editing != nil {
			_, err := m.txs.Update(ctx, *editing, input)
			return dashSaveMsg{err: err}
		}

		_, err := m.txs.Create(ctx, input)

		return dashSaveMsg{err: err}
	}
}

func (m DashboardModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		return dashDeleteMsg{err: m.txs.Delete(ctx, id)}
	}
}

func (m DashboardModel) exportCmd() tea.Cmd {
	items := m.items
	dir := m.exportDir

	return func() tea.Msg {
		path, err := export.ToFile(dir, items)
		return dashExportMsg{path: path, err: err}
	}
}

func (m *DashboardModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))

	for _, tx := range m.items {
		amount := money.Format(tx.Amount)
		if tx.Type == api.TypeExpense {
			amount = "-" + amount
		}

		category := ""
		if tx.Category != nil {
			category = tx.Category.Name
		}

		rows = append(rows, table.Row{
			dates.FormatDate(tx.Date),
			string(tx.Type),
			amount,
			tx.Description,
			category,
		})
	}

	m.table.SetRows(rows)
}

func (m DashboardModel) totals() (income, expense, balance int64) {
	for _, tx := range m.items {
		if tx.Type == api.TypeIncome {
			income += tx.Amount
		} else {
			expense += tx.Amount
		}
	}

	return income, expense, income - expense
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	income, expense, balance := m.totals()

	header := fmt.Sprintf(
		"Filter: [c] Category: %s    In: %s  Out: %s  Balance: %s",
		activeStyle.Render(m.filterLabel()),
		money.FormatCurrency(income),
		money.FormatCurrency(expense),
		money.FormatCurrency(balance),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(m.ShortHelp()),
	)

	if m.state == dashStateForm && m.form != nil {
		formTitle := "New Transaction"
		if m.editing != nil {
			formTitle = "Edit Transaction"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", formTitle, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.errText != "" {
		content = errStyle.Render(m.errText) + "\n" + content
	} else if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
