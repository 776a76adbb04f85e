package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pocketbook/internal/api"
	"pocketbook/internal/auth"
	"pocketbook/internal/http/respond"
	"pocketbook/internal/user"
)

type Handler struct {
	users  *user.Service
	tokens *auth.Issuer
}

func NewHandler(users *user.Service, tokens *auth.Issuer) *Handler {
	return &Handler{users: users, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/sign-in", h.signIn)
	r.Post("/sign-up", h.signUp)
}

// signIn answers bad credentials with 400, not 401. 401 is reserved for bad
// or expired tokens so clients can treat it as a session-wide invalidation.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req api.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			respond.Error(w, http.StatusBadRequest, "Invalid email or password")
			return
		}

		respond.Error(w, http.StatusInternalServerError, "Internal server error")

		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.Data(w, http.StatusOK, api.AuthPayload{Token: token, User: toAPI(u)})
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req api.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.users.Register(r.Context(), user.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailTaken):
			respond.Error(w, http.StatusBadRequest, "Email already in use")
		case errors.Is(err, user.ErrInvalid):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			respond.Error(w, http.StatusInternalServerError, "Internal server error")
		}

		return
	}

	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond.Data(w, http.StatusCreated, api.AuthPayload{Token: token, User: toAPI(u)})
}

func toAPI(u *user.User) api.User {
	return api.User{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
