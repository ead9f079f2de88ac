package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, reviewHandler *adaptor.ReviewHandler) {
	r.Route("/movies/{movie_id}/reviews", func(r chi.Router) {
		r.Use(middleware.RequireLogin("/sessions/new"))

		r.Get("/new", reviewHandler.NewReview)
		r.Post("/", reviewHandler.CreateReview)
	})
}
