package view

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"pocketbook/internal/api"
	"pocketbook/internal/client/session"
)

type loginMode int

const (
	modeSignIn loginMode = iota
	modeSignUp
)

type LoginModel struct {
	CommonModel
	session *session.Manager

	mode       loginMode
	form       *huh.Form
	submitting bool
	errText    string

	firstName string
	lastName  string
	email     string
	password  string
}

func NewLoginModel(sess *session.Manager) LoginModel {
	m := LoginModel{session: sess, mode: modeSignIn}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) Title() string {
	if m.mode == modeSignUp {
		return "Create Account"
	}

	return "Sign In"
}

func (m LoginModel) ShortHelp() string {
	if m.mode == modeSignUp {
		return "ctrl+t: sign in instead | enter: submit"
	}

	return "ctrl+t: create an account | enter: submit"
}

func (m *LoginModel) buildForm() *huh.Form {
	fields := []huh.Field{}

	if m.mode == modeSignUp {
		fields = append(fields,
			huh.NewInput().
				Key("firstName").
				Title("First name").
				Value(&m.firstName).
				Validate(notBlank("first name")),
			huh.NewInput().
				Key("lastName").
				Title("Last name").
				Value(&m.lastName).
				Validate(notBlank("last name")),
		)
	}

	fields = append(fields,
		huh.NewInput().
			Key("email").
			Title("Email").
			Value(&m.email).
			Validate(func(s string) error {
				if _, err := mail.ParseAddress(strings.TrimSpace(s)); err != nil {
					return errors.New("enter a valid email address")
				}
				return nil
			}),
		huh.NewInput().
			Key("password").
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&m.password).
			Validate(func(s string) error {
				if len(s) < 8 {
					return errors.New("password must be at least 8 characters")
				}
				return nil
			}),
	)

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(44).WithShowHelp(false)
}

func notBlank(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}

		return nil
	}
}

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

type authResultMsg struct {
	err error
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.errText = ErrorText(msg.err)
			m.password = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		// Success is observed through the session change, not here.
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+t" && !m.submitting {
			if m.mode == modeSignIn {
				m.mode = modeSignUp
			} else {
				m.mode = modeSignIn
			}

			m.errText = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	// bubbletea copies this model between updates, so the Value bindings
	// write into an earlier copy. The form is shared by pointer; read the
	// completed inputs back off it.
	m.firstName = m.form.GetString("firstName")
	m.lastName = m.form.GetString("lastName")
	m.email = m.form.GetString("email")
	m.password = m.form.GetString("password")

	m.submitting = true
	m.errText = ""

	return m, m.submitCmd()
}

func (m LoginModel) submitCmd() tea.Cmd {
	mode := m.mode
	firstName := strings.TrimSpace(m.firstName)
	lastName := strings.TrimSpace(m.lastName)
	email := strings.TrimSpace(m.email)
	password := m.password

	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		if mode == modeSignUp {
			return authResultMsg{err: m.session.Register(ctx, api.SignUpRequest{
				FirstName: firstName,
				LastName:  lastName,
				Email:     email,
				Password:  password,
			})}
		}

		return authResultMsg{err: m.session.Login(ctx, email, password)}
	}
}

func (m LoginModel) View() string {
	body := titleStyle.Render("Pocketbook / "+m.Title()) + "\n\n"

	if m.submitting {
		body += "Signing in...\n"
	} else {
		body += m.form.View()
	}

	if m.errText != "" {
		body += "\n" + errStyle.Render(m.errText)
	}

	body += "\n\n" + faintStyle.Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1, 2).Render(body)
}
