// Package export writes transaction snapshots to CSV files for use outside
// the app.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"pocketbook/internal/api"
	"pocketbook/internal/dates"
	"pocketbook/internal/money"
)

var header = []string{"date", "description", "type", "amount", "category"}

// WriteCSV renders the given transactions as CSV. Amounts are decimal
// strings, expenses negative.
func WriteCSV(w io.Writer, txs []api.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, tx := range txs {
		amount := money.Format(tx.Amount)
		if tx.Type == api.TypeExpense {
			amount = "-" + amount
		}

		category := ""
		if tx.Category != nil {
			category = tx.Category.Name
		}

		record := []string{
			dates.FormatDate(tx.Date),
			tx.Description,
			string(tx.Type),
			amount,
			category,
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// ToFile writes the transactions to a timestamped CSV file under dir,
// creating the directory if needed, and returns the file's path.
func ToFile(dir string, txs []api.Transaction) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("transactions_%s.csv", time.Now().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, txs); err != nil {
		return "", err
	}

	return path, nil
}
