package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authdomain "pocketbook/internal/auth"
	authhandler "pocketbook/internal/http/auth"
	categoryhandler "pocketbook/internal/http/category"
	mw "pocketbook/internal/http/middleware"
	transactionhandler "pocketbook/internal/http/transaction"
	userhandler "pocketbook/internal/http/user"
)

func New(
	tokens *authdomain.Issuer,
	auth *authhandler.Handler,
	users *userhandler.Handler,
	transactions *transactionhandler.Handler,
	categories *categoryhandler.Handler,
	allowedOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			auth.Routes(r)
		})

		// Everything past this point requires a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(tokens))

			r.Route("/users", users.Routes)

			r.Route("/transactions", func(r chi.Router) {
				transactions.Routes(r)
			})

			r.Route("/categories", func(r chi.Router) {
				categories.Routes(r)
			})
		})
	})

	return router
}
