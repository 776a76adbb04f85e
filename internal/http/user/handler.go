package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pocketbook/internal/api"
	"pocketbook/internal/http/middleware"
	"pocketbook/internal/http/respond"
	"pocketbook/internal/user"
)

type Handler struct {
	users *user.Service
}

func NewHandler(users *user.Service) *Handler {
	return &Handler{users: users}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/current", h.current)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	u, err := h.users.Get(r.Context(), userID)
	if err != nil {
		// A valid token for a user that no longer exists is as good as an
		// invalid token.
		respond.Error(w, http.StatusUnauthorized, "Invalid or expired token")

		return
	}

	respond.Data(w, http.StatusOK, api.UserPayload{User: api.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}})
}
