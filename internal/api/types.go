// Package api defines the wire model shared by the HTTP server and the
// terminal client: entity DTOs, request payloads and the response envelope
// data shapes. Amounts are integer minor currency units; dates are RFC 3339
// instants.
package api

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TransactionType carries the sign of an amount; stored amounts are always
// positive.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      int64           `json:"amount"` // minor units, always > 0
	Type        TransactionType `json:"type"`
	CategoryID  *uuid.UUID      `json:"categoryId,omitempty"`
	Category    *Category       `json:"category,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NullableID distinguishes absent, null and set id fields in PATCH bodies.
// Marshals as null when no id is held, so senders always transmit the field.
type NullableID struct {
	Present bool
	ID      *uuid.UUID
}

func (n *NullableID) UnmarshalJSON(b []byte) error {
	n.Present = true

	if string(b) == "null" {
		n.ID = nil
		return nil
	}

	return json.Unmarshal(b, &n.ID)
}

func (n NullableID) MarshalJSON() ([]byte, error) {
	if n.ID == nil {
		return []byte("null"), nil
	}

	return json.Marshal(n.ID)
}
