package store

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pocketbook/internal/api"
	"pocketbook/internal/client"
)

// Categories owns the category collection of one screen. Same pattern as
// Transactions; categories have no update operation.
type Categories struct {
	client *client.Client

	mu     sync.Mutex
	issued uint64
	items  []api.Category
}

func NewCategories(c *client.Client) *Categories {
	return &Categories{client: c}
}

func (s *Categories) Load(ctx context.Context, opts ListOptions) ([]api.Category, error) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	q := url.Values{}
	opts.query(q)

	var payload api.CategoriesPayload

	err := s.client.Do(ctx, http.MethodGet, "/api/categories/", q, nil, &payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		return nil, err
	}

	if seq != s.issued {
		return s.snapshot(), nil
	}

	s.items = payload.Categories

	return s.snapshot(), nil
}

func (s *Categories) Create(ctx context.Context, name string) (*api.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}

	var payload api.CategoryPayload

	err := s.client.Do(ctx, http.MethodPost, "/api/categories/", nil,
		api.CreateCategoryRequest{Name: name}, &payload)
	if err != nil {
		return nil, err
	}

	created := payload.Category

	s.mu.Lock()
	s.items = append(s.items, created)
	s.mu.Unlock()

	return &created, nil
}

func (s *Categories) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Do(ctx, http.MethodDelete, "/api/categories/"+id.String(), nil, nil, nil); err != nil {
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

func (s *Categories) Items() []api.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

func (s *Categories) snapshot() []api.Category {
	out := make([]api.Category, len(s.items))
	copy(out, s.items)

	return out
}
