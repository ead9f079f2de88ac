package wire

import (
	"net/http"

	"movie-review/internal/adaptor"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.With(middleware.RedirectIfAuthenticated("/movies")).Get("/users/new", userHandler.NewUser)
	r.Post("/users", userHandler.CreateUser)

	r.Get("/signup", redirectTo("/users/new"))
}

func redirectTo(path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Redirect(w, r, path)
	}
}
