package store

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pocketbook/internal/api"
	"pocketbook/internal/client"
	"pocketbook/internal/dates"
	"pocketbook/internal/money"
)

// TransactionFilter selects the slice of the collection a screen shows.
type TransactionFilter struct {
	ListOptions
	Category CategoryFilter
}

// TransactionInput is what the form submits: display values, converted to
// wire values only after local validation passes.
type TransactionInput struct {
	Description string
	Amount      string // decimal display string, e.g. "3.50"
	Type        api.TransactionType
	CategoryID  *uuid.UUID // nil = no category
	Date        time.Time
}

func (in TransactionInput) validate() (int64, error) {
	if strings.TrimSpace(in.Description) == "" {
		return 0, &ValidationError{Field: "description", Message: "description is required"}
	}

	minor, err := money.Parse(in.Amount)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Message: "amount must be a positive number"}
	}

	if !in.Type.Valid() {
		return 0, &ValidationError{Field: "type", Message: "type must be INCOME or EXPENSE"}
	}

	if in.Date.IsZero() {
		return 0, &ValidationError{Field: "date", Message: "date is required"}
	}

	return minor, nil
}

// Transactions owns the transaction collection of one screen.
type Transactions struct {
	client *client.Client

	mu     sync.Mutex
	issued uint64
	items  []api.Transaction
}

func NewTransactions(c *client.Client) *Transactions {
	return &Transactions{client: c}
}

// Load fetches the filtered collection and replaces local state wholesale.
// Every load is tagged with a sequence number; a completion that is no longer
// the latest issued load is discarded, so a stale response can never
// overwrite a fresher one.
func (s *Transactions) Load(ctx context.Context, filter TransactionFilter) ([]api.Transaction, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	q := url.Values{}
	filter.ListOptions.query(q)
	filter.Category.query(q)

	var payload api.TransactionsPayload

	err := s.client.Do(ctx, http.MethodGet, "/api/transactions/", q, nil, &payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if seq != s.issued {
		// Superseded by a later load; keep whatever that one delivers.
		return s.snapshot(), nil
	}

	s.items = payload.Transactions

	return s.snapshot(), nil
}

// Create validates locally, converts display values to wire values, and on
// success prepends the server-returned entity. The server is authoritative
// for generated fields (id, createdAt, the denormalized category).
func (s *Transactions) Create(ctx context.Context, in TransactionInput) (*api.Transaction, error) {
	minor, err := in.validate()
	if err != nil {
		return nil, err
	}

	req := api.CreateTransactionRequest{
		Description: strings.TrimSpace(in.Description),
		Amount:      minor,
		Type:        in.Type,
		CategoryID:  api.NullableID{Present: true, ID: in.CategoryID},
		Date:        dates.Normalize(in.Date),
	}

	var payload api.TransactionPayload

	if err := s.client.Do(ctx, http.MethodPost, "/api/transactions/", nil, req, &payload); err != nil {
		return nil, err
	}

	created := payload.Transaction

	s.mu.Lock()
	s.items = append([]api.Transaction{created}, s.items...)
	s.mu.Unlock()

	return &created, nil
}

// Update patches the transaction and replaces the matching local entity by
// identity. A missing local match is a no-op, not an error.
func (s *Transactions) Update(ctx context.Context, id uuid.UUID, in TransactionInput) (*api.Transaction, error) {
	minor, err := in.validate()
	if err != nil {
		return nil, err
	}

	desc := strings.TrimSpace(in.Description)
	typ := in.Type
	date := dates.Normalize(in.Date)

	req := api.UpdateTransactionRequest{
		Description: &desc,
		Amount:      &minor,
		Type:        &typ,
		CategoryID:  api.NullableID{Present: true, ID: in.CategoryID},
		Date:        &date,
	}

	var payload api.TransactionPayload

	if err := s.client.Do(ctx, http.MethodPatch, "/api/transactions/"+id.String(), nil, req, &payload); err != nil {
		return nil, err
	}

	updated := payload.Transaction

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == updated.ID {
			s.items[i] = updated
			break
		}
	}
	s.mu.Unlock()

	return &updated, nil
}

// Delete removes the entity only after the server acknowledges. No optimistic
// removal, so there is nothing to roll back on failure.
func (s *Transactions) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Do(ctx, http.MethodDelete, "/api/transactions/"+id.String(), nil, nil, nil); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	return nil
}

// Items returns a copy of the current collection in insertion order.
func (s *Transactions) Items() []api.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

func (s *Transactions) snapshot() []api.Transaction {
	out := make([]api.Transaction, len(s.items))
	copy(out, s.items)

	return out
}
