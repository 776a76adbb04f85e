package transaction_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pocketbook/internal/transaction"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()
	catID := uuid.New()
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: transaction.CreateParams{
				UserID:      userID,
				Description: "  Weekly groceries  ",
				Amount:      4250,
				Type:        transaction.TypeExpense,
				CategoryID:  &catID,
				Date:        date,
			},
			setupMock: func(m *transaction.MockRepository) {
				var created transaction.Transaction

				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						assert.Equal(t, "Weekly groceries", tx.Description)
						assert.Equal(t, int64(4250), tx.Amount)
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						created = *tx
						return nil
					})

				m.EXPECT().
					GetTransaction(gomock.Any(), userID, gomock.Any()).
					DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*transaction.Transaction, error) {
						return &created, nil
					})
			},
		},
		{
			name: "EmptyDescription",
			params: transaction.CreateParams{
				UserID: userID,
				Amount: 100,
				Type:   transaction.TypeExpense,
				Date:   date,
			},
			wantErr: transaction.ErrInvalid,
		},
		{
			name: "ZeroAmount",
			params: transaction.CreateParams{
				UserID:      userID,
				Description: "Lunch",
				Amount:      0,
				Type:        transaction.TypeExpense,
				Date:        date,
			},
			wantErr: transaction.ErrInvalid,
		},
		{
			name: "NegativeAmount",
			params: transaction.CreateParams{
				UserID:      userID,
				Description: "Lunch",
				Amount:      -500,
				Type:        transaction.TypeExpense,
				Date:        date,
			},
			wantErr: transaction.ErrInvalid,
		},
		{
			name: "BadType",
			params: transaction.CreateParams{
				UserID:      userID,
				Description: "Lunch",
				Amount:      500,
				Type:        transaction.Type("TRANSFER"),
				Date:        date,
			},
			wantErr: transaction.ErrInvalid,
		},
		{
			name: "MissingDate",
			params: transaction.CreateParams{
				UserID:      userID,
				Description: "Lunch",
				Amount:      500,
				Type:        transaction.TypeIncome,
			},
			wantErr: transaction.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, "Weekly groceries", got.Description)
		})
	}
}

func TestService_Update(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()
	catID := uuid.New()

	existing := func() *transaction.Transaction {
		return &transaction.Transaction{
			ID:          id,
			UserID:      userID,
			Description: "Rent",
			Amount:      120000,
			Type:        transaction.TypeExpense,
			CategoryID:  &catID,
			Date:        time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("PartialPatchKeepsUntouchedFields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().GetTransaction(gomock.Any(), userID, id).Return(existing(), nil)

		var updated *transaction.Transaction

		repo.EXPECT().
			UpdateTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
				updated = tx
				return nil
			})
		repo.EXPECT().
			GetTransaction(gomock.Any(), userID, id).
			DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*transaction.Transaction, error) {
				return updated, nil
			})

		newAmount := int64(125000)
		svc := transaction.NewService(repo)
		got, err := svc.Update(context.Background(), userID, id, transaction.Patch{
			Amount: &newAmount,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(125000), got.Amount)
		assert.Equal(t, "Rent", got.Description)
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, catID, *got.CategoryID)
	})

	t.Run("ClearCategory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().GetTransaction(gomock.Any(), userID, id).Return(existing(), nil)

		var updated *transaction.Transaction

		repo.EXPECT().
			UpdateTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
				updated = tx
				return nil
			})
		repo.EXPECT().
			GetTransaction(gomock.Any(), userID, id).
			DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*transaction.Transaction, error) {
				return updated, nil
			})

		svc := transaction.NewService(repo)
		got, err := svc.Update(context.Background(), userID, id, transaction.Patch{
			Category: transaction.CategoryPatch{Present: true, ID: nil},
		})

		require.NoError(t, err)
		assert.Nil(t, got.CategoryID)
	})

	t.Run("InvalidPatchRejectedBeforeWrite", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().GetTransaction(gomock.Any(), userID, id).Return(existing(), nil)

		badAmount := int64(-1)
		svc := transaction.NewService(repo)
		got, err := svc.Update(context.Background(), userID, id, transaction.Patch{
			Amount: &badAmount,
		})

		assert.ErrorIs(t, err, transaction.ErrInvalid)
		assert.Nil(t, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := transaction.NewMockRepository(ctrl)
		repo.EXPECT().
			GetTransaction(gomock.Any(), userID, id).
			Return(nil, transaction.ErrNotFound)

		svc := transaction.NewService(repo)
		_, err := svc.Update(context.Background(), userID, id, transaction.Patch{})

		assert.ErrorIs(t, err, transaction.ErrNotFound)
	})
}

func TestService_List(t *testing.T) {
	userID := uuid.New()
	catID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		ListTransactions(gomock.Any(), transaction.ListFilter{
			UserID:   userID,
			Page:     2,
			Limit:    10,
			Category: transaction.CategoryScope{One: &catID},
		}).
		Return([]*transaction.Transaction{{ID: uuid.New()}}, nil)

	svc := transaction.NewService(repo)
	got, err := svc.List(context.Background(), transaction.ListFilter{
		UserID:   userID,
		Page:     2,
		Limit:    10,
		Category: transaction.CategoryScope{One: &catID},
	})

	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Delete(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().
		DeleteTransaction(gomock.Any(), userID, id).
		Return(transaction.ErrNotFound)

	svc := transaction.NewService(repo)
	err := svc.Delete(context.Background(), userID, id)

	assert.ErrorIs(t, err, transaction.ErrNotFound)
}
