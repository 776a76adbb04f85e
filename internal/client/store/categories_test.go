package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketbook/internal/api"
	"pocketbook/internal/client"
	"pocketbook/internal/client/store"
)

func newCategories(t *testing.T, handler http.Handler) *store.Categories {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return store.NewCategories(client.New(srv.URL))
}

func TestCategories_CreateAppendsServerEntity(t *testing.T) {
	serverID := uuid.New()

	s := newCategories(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.CreateCategoryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Groceries", req.Name, "name arrives trimmed")

		writeEnvelope(w, api.CategoryPayload{Category: api.Category{
			ID:        serverID,
			Name:      req.Name,
			CreatedAt: time.Now().UTC(),
		}})
	}))

	created, err := s.Create(context.Background(), "  Groceries  ")
	require.NoError(t, err)
	assert.Equal(t, serverID, created.ID)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, serverID, items[0].ID)
	assert.NotZero(t, items[0].CreatedAt, "server-generated fields kept")
}

func TestCategories_CreateRejectsEmptyName(t *testing.T) {
	var calls atomic.Int32

	s := newCategories(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := s.Create(context.Background(), "   ")

	var vErr *store.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
	assert.Zero(t, calls.Load())
}

func TestCategories_DeleteRemovesByIdentity(t *testing.T) {
	keep := uuid.New()
	drop := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories/", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, api.CategoriesPayload{Categories: []api.Category{
			{ID: keep, Name: "Rent"},
			{ID: drop, Name: "Subscriptions"},
		}})
	})
	mux.HandleFunc("DELETE /api/categories/"+drop.String(), func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, struct{}{})
	})

	s := newCategories(t, mux)

	_, err := s.Load(context.Background(), store.ListOptions{})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), drop))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, keep, items[0].ID)
}

func TestCategories_LoadReplacesWholesale(t *testing.T) {
	pages := [][]api.Category{
		{{ID: uuid.New(), Name: "Old"}},
		{{ID: uuid.New(), Name: "NewA"}, {ID: uuid.New(), Name: "NewB"}},
	}

	var call atomic.Int32

	s := newCategories(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := call.Add(1) - 1
		writeEnvelope(w, api.CategoriesPayload{Categories: pages[n]})
	}))

	ctx := context.Background()

	_, err := s.Load(ctx, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, s.Items(), 1)

	got, err := s.Load(ctx, store.ListOptions{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Equal(t, "NewA", got[0].Name)
}
