package view_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketbook/cmd/tui/internal/view"
	"pocketbook/internal/api"
	"pocketbook/internal/client"
	"pocketbook/internal/client/session"
	"pocketbook/internal/client/store"
)

// runView runs a screen through a headless program, feeding keystrokes the
// way a terminal would. The runtime copies the model on every update, so
// these tests exercise exactly the copy semantics the forms live under.
// Chunks are paced so that focus commands issued by earlier keys land first.
func runView(t *testing.T, m tea.Model, input ...string) (stop func()) {
	t.Helper()

	pr, pw := io.Pipe()

	p := tea.NewProgram(m,
		tea.WithInput(pr),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
	)

	done := make(chan struct{})

	go func() {
		defer close(done)

		_, err := p.Run()
		assert.NoError(t, err)
	}()

	go func() {
		for _, chunk := range input {
			time.Sleep(150 * time.Millisecond)
			_, _ = pw.Write([]byte(chunk))
		}
	}()

	return func() {
		p.Quit()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			p.Kill()
		}

		_ = pw.Close()
	}
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the request")
		panic("unreachable")
	}
}

func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")

	buf, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(w, `{"data":%s}`, buf)
}

// Typed credentials must reach the server verbatim: the form lives on copies
// of the model, so the submit path has to read the completed inputs off the
// form itself instead of the model fields.
func TestLogin_SubmitsTypedCredentials(t *testing.T) {
	got := make(chan api.SignInRequest, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/sign-in", r.URL.Path)

		var req api.SignInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got <- req

		writeEnvelope(w, api.AuthPayload{
			Token: "tok",
			User:  api.User{ID: uuid.New(), FirstName: "Ada", Email: req.Email},
		})
	}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL)
	sess := session.NewManager(c, &session.MemoryStore{})
	c.SetCredentials(sess)

	stop := runView(t, view.NewLoginModel(sess),
		"ada@example.com\r",
		"hunter22\r",
	)
	defer stop()

	req := waitFor(t, got)
	assert.Equal(t, "ada@example.com", req.Email)
	assert.Equal(t, "hunter22", req.Password)
}

func TestDashboard_CreateFormSubmitsTypedValues(t *testing.T) {
	got := make(chan api.CreateTransactionRequest, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, api.TransactionsPayload{})
	})
	mux.HandleFunc("GET /api/categories/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, api.CategoriesPayload{})
	})
	mux.HandleFunc("POST /api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateTransactionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got <- req

		writeEnvelope(w, api.TransactionPayload{Transaction: api.Transaction{
			ID:          uuid.New(),
			Description: req.Description,
			Amount:      req.Amount,
			Type:        req.Type,
			Date:        req.Date,
			CreatedAt:   time.Now().UTC(),
		}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := client.New(srv.URL)

	stop := runView(t, view.NewDashboardModel(store.NewTransactions(c), store.NewCategories(c), t.TempDir()),
		"n",         // open the create form
		"Hosting\r", // description
		"12.50\r",   // amount
		"\r",        // type, Expense preselected
		"\r",        // category, None preselected
		"\r",        // date, prefilled with today
	)
	defer stop()

	req := waitFor(t, got)
	assert.Equal(t, "Hosting", req.Description)
	assert.Equal(t, int64(1250), req.Amount)
	assert.Equal(t, api.TypeExpense, req.Type)
}

func TestCategories_CreateFormSubmitsTypedName(t *testing.T) {
	got := make(chan api.CreateCategoryRequest, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, api.CategoriesPayload{})
	})
	mux.HandleFunc("POST /api/categories/", func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateCategoryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got <- req

		writeEnvelope(w, api.CategoryPayload{Category: api.Category{
			ID:        uuid.New(),
			Name:      req.Name,
			CreatedAt: time.Now().UTC(),
		}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	stop := runView(t, view.NewCategoriesModel(store.NewCategories(client.New(srv.URL))),
		"n",           // open the create form
		"Groceries\r", // name
	)
	defer stop()

	assert.Equal(t, "Groceries", waitFor(t, got).Name)
}
