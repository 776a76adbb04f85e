package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, userID, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CategoryScope is a tri-state filter: the zero value selects everything,
// One selects a single category, Uncategorized selects records without one.
type CategoryScope struct {
	One           *uuid.UUID
	Uncategorized bool
}

type ListFilter struct {
	UserID   uuid.UUID
	Page     int
	Limit    int
	Category CategoryScope
}

type CreateParams struct {
	UserID      uuid.UUID
	Description string
	Amount      int64
	Type        Type
	CategoryID  *uuid.UUID
	Date        time.Time
}

func (p CreateParams) validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalid)
	}

	if p.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}

	if !p.Type.Valid() {
		return fmt.Errorf("%w: type must be INCOME or EXPENSE", ErrInvalid)
	}

	if p.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	tx := &Transaction{
		UserID:      params.UserID,
		Description: strings.TrimSpace(params.Description),
		Amount:      params.Amount,
		Type:        params.Type,
		CategoryID:  params.CategoryID,
		Date:        params.Date,
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	// Re-read so the response carries the denormalized category snapshot.
	return s.repo.GetTransaction(ctx, tx.UserID, tx.ID)
}

// Patch carries partial updates. Category distinguishes "leave alone" from
// "set" from "clear", because null on the wire is meaningful there.
type Patch struct {
	Description *string
	Amount      *int64
	Type        *Type
	Date        *time.Time
	Category    CategoryPatch
}

type CategoryPatch struct {
	Present bool
	ID      *uuid.UUID
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, patch Patch) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if patch.Description != nil {
		tx.Description = strings.TrimSpace(*patch.Description)
	}

	if patch.Amount != nil {
		tx.Amount = *patch.Amount
	}

	if patch.Type != nil {
		tx.Type = *patch.Type
	}

	if patch.Date != nil {
		tx.Date = *patch.Date
	}

	if patch.Category.Present {
		tx.CategoryID = patch.Category.ID
	}

	patched := CreateParams{
		UserID:      tx.UserID,
		Description: tx.Description,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Date:        tx.Date,
	}
	if err := patched.validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return s.repo.GetTransaction(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, userID, id)
}
