package api

import "time"

// Request bodies.

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type CreateTransactionRequest struct {
	Description string          `json:"description"`
	Amount      int64           `json:"amount"`
	Type        TransactionType `json:"type"`
	CategoryID  NullableID      `json:"categoryId"`
	Date        time.Time       `json:"date"`
}

type UpdateTransactionRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *int64           `json:"amount,omitempty"`
	Type        *TransactionType `json:"type,omitempty"`
	CategoryID  NullableID       `json:"categoryId"`
	Date        *time.Time       `json:"date,omitempty"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// Success payloads, each the shape of the envelope's data field.

type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UserPayload struct {
	User User `json:"user"`
}

type TransactionsPayload struct {
	Transactions []Transaction `json:"transactions"`
}

type TransactionPayload struct {
	Transaction Transaction `json:"transaction"`
}

type CategoriesPayload struct {
	Categories []Category `json:"categories"`
}

type CategoryPayload struct {
	Category Category `json:"category"`
}
