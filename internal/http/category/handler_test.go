package category

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"pocketbook/internal/category"
	"pocketbook/internal/http/middleware"
)

func TestDelete_AnswersEmptyEnvelope(t *testing.T) {
	ctrl := gomock.NewController(t)

	userID := uuid.New()
	id := uuid.New()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().DeleteCategory(gomock.Any(), userID, id).Return(nil)

	r := chi.NewRouter()
	NewHandler(category.NewService(repo)).Routes(r)

	req := httptest.NewRequest(http.MethodDelete, "/"+id.String(), nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{}}`, rec.Body.String())
}
