package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"pocketbook/internal/category"
)

// Type represents the direction of a transaction. The stored amount is
// always positive; the sign lives here.
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

var (
	ErrNotFound = errors.New("transaction not found")
	ErrInvalid  = errors.New("invalid transaction")
)

// Transaction is a single income or expense record.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      int64 // minor currency units, > 0
	Type        Type
	CategoryID  *uuid.UUID
	Category    *category.Category // loaded via JOIN, nil when uncategorized
	Date        time.Time
	CreatedAt   time.Time
}
