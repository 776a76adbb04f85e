package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pocketbook/internal/category"
	"pocketbook/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `
	t.id, t.user_id, t.description, t.amount, t.type, t.category_id, t.date, t.created_at,
	c.id, c.user_id, c.name, c.created_at
`

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row joined against its category.
// The category columns are NULL when the record is uncategorized.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var (
		tx transaction.Transaction

		catID        uuid.NullUUID
		catUserID    uuid.NullUUID
		catName      sql.NullString
		catCreatedAt sql.NullTime
	)

	err := s.Scan(
		&tx.ID, &tx.UserID, &tx.Description, &tx.Amount, &tx.Type,
		&tx.CategoryID, &tx.Date, &tx.CreatedAt,
		&catID, &catUserID, &catName, &catCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if catID.Valid {
		tx.Category = &category.Category{
			ID:        catID.UUID,
			UserID:    catUserID.UUID,
			Name:      catName.String,
			CreatedAt: catCreatedAt.Time,
		}
	}

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, description, amount, type, category_id, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.UserID, tx.Description, tx.Amount, tx.Type, tx.CategoryID, tx.Date,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1 AND t.user_id = $2
	`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET description = $1, amount = $2, type = $3, category_id = $4, date = $5
		WHERE id = $6 AND user_id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.Description, tx.Amount, tx.Type, tx.CategoryID, tx.Date, tx.ID, tx.UserID)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if affected == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if affected == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + selectColumns + `
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
	`

	args := []any{filter.UserID}

	switch {
	case filter.Category.Uncategorized:
		query += ` AND t.category_id IS NULL`
	case filter.Category.One != nil:
		args = append(args, *filter.Category.One)
		query += fmt.Sprintf(` AND t.category_id = $%d`, len(args))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}

	args = append(args, limit, (page-1)*limit)
	query += fmt.Sprintf(`
		ORDER BY t.date DESC, t.created_at DESC, t.id
		LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var out []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		out = append(out, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return out, nil
}
