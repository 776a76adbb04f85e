package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pocketbook/internal/auth"
	"pocketbook/internal/user"
)

func TestService_Register(t *testing.T) {
	type testCase struct {
		name      string
		params    user.RegisterParams
		setupMock func(m *user.MockRepository)
		wantErr   bool
	}

	valid := user.RegisterParams{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "Ada@Example.com",
		Password:  "correcthorse",
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *user.User) error {
						assert.Equal(t, "ada@example.com", u.Email)
						assert.NotEqual(t, "correcthorse", u.PasswordHash)
						u.ID = uuid.New()
						u.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ShortPassword",
			params: user.RegisterParams{
				FirstName: "Ada", LastName: "Lovelace",
				Email: "ada@example.com", Password: "short",
			},
			wantErr: true,
		},
		{
			name: "BadEmail",
			params: user.RegisterParams{
				FirstName: "Ada", LastName: "Lovelace",
				Email: "not-an-email", Password: "correcthorse",
			},
			wantErr: true,
		},
		{
			name: "MissingName",
			params: user.RegisterParams{
				FirstName: " ", LastName: "Lovelace",
				Email: "ada@example.com", Password: "correcthorse",
			},
			wantErr: true,
		},
		{
			name:   "EmailTaken",
			params: valid,
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					Return(user.ErrEmailTaken)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := user.NewService(repo)
			got, err := svc.Register(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Authenticate(t *testing.T) {
	hash, err := auth.HashPassword("correcthorse")
	require.NoError(t, err)

	known := &user.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: hash}

	type testCase struct {
		name      string
		email     string
		password  string
		setupMock func(m *user.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			email:    "ada@example.com",
			password: "correcthorse",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ada@example.com").
					Return(known, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    "ada@example.com",
			password: "wrong",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ada@example.com").
					Return(known, nil)
			},
			wantErr: user.ErrInvalidCredentials,
		},
		{
			name:     "UnknownEmail",
			email:    "nobody@example.com",
			password: "correcthorse",
			setupMock: func(m *user.MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "nobody@example.com").
					Return(nil, user.ErrNotFound)
			},
			wantErr: user.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := user.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := user.NewService(repo)
			got, err := svc.Authenticate(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, known.ID, got.ID)
		})
	}
}
