package category_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pocketbook/internal/category"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		input     string
		setupMock func(m *category.MockRepository)
		wantName  string
		wantErr   bool
	}

	tests := []testCase{
		{
			name:  "Success",
			input: "  Groceries  ",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					CreateCategory(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *category.Category) error {
						assert.Equal(t, userID, c.UserID)
						c.ID = uuid.New()
						c.CreatedAt = time.Now()
						return nil
					})
			},
			wantName: "Groceries",
		},
		{
			name:    "EmptyName",
			input:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := category.NewService(repo)
			got, err := svc.Create(context.Background(), userID, tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantName, got.Name)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		DeleteCategory(gomock.Any(), userID, id).
		Return(category.ErrNotFound)

	svc := category.NewService(repo)
	err := svc.Delete(context.Background(), userID, id)

	assert.ErrorIs(t, err, category.ErrNotFound)
}
