package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketbook/internal/api"
)

func sampleTransactions() []api.Transaction {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	return []api.Transaction{
		{
			ID:          uuid.New(),
			Description: "Hosting",
			Amount:      1250,
			Type:        api.TypeExpense,
			Category:    &api.Category{ID: uuid.New(), Name: "Services"},
			Date:        date,
		},
		{
			ID:          uuid.New(),
			Description: "Salary",
			Amount:      250000,
			Type:        api.TypeIncome,
			Date:        date,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, sampleTransactions()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "date,description,type,amount,category", lines[0])
	assert.Equal(t, "2026-03-14,Hosting,EXPENSE,-12.50,Services", lines[1])
	assert.Equal(t, "2026-03-14,Salary,INCOME,2500.00,", lines[2])
}

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := ToFile(dir, sampleTransactions())
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(filepath.Base(path), "transactions_"))
	assert.Contains(t, string(content), "Hosting")
	assert.Contains(t, string(content), "Salary")
}
