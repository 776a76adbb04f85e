//go:build integration

package store_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketbook/internal/category"
	"pocketbook/internal/category/store"
	"pocketbook/internal/database"
	"pocketbook/internal/transaction"
	txstore "pocketbook/internal/transaction/store"
	"pocketbook/internal/user"
	userstore "pocketbook/internal/user/store"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./...

// Deleting a category must detach its transactions, not remove them. The
// schema enforces it with ON DELETE SET NULL; this exercises the real thing.
func TestDeleteCategory_DetachesTransactions(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	db, err := database.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Bootstrap(ctx, db))

	u := &user.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        fmt.Sprintf("ada+%s@example.com", uuid.NewString()),
		PasswordHash: "not-a-real-hash",
	}
	require.NoError(t, userstore.New(db).CreateUser(ctx, u))

	cats := store.New(db)
	c := &category.Category{UserID: u.ID, Name: "Groceries"}
	require.NoError(t, cats.CreateCategory(ctx, c))

	txs := txstore.New(db)
	tx := &transaction.Transaction{
		UserID:      u.ID,
		Description: "Weekly shop",
		Amount:      4200,
		Type:        transaction.TypeExpense,
		CategoryID:  &c.ID,
		Date:        time.Now().UTC(),
	}
	require.NoError(t, txs.CreateTransaction(ctx, tx))

	require.NoError(t, cats.DeleteCategory(ctx, u.ID, c.ID))

	got, err := txs.GetTransaction(ctx, u.ID, tx.ID)
	require.NoError(t, err, "transaction must survive the category delete")
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.Category)
	assert.Equal(t, "Weekly shop", got.Description)
}
