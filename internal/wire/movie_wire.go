package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, config *utils.Config) {
	r.Route("/movies", func(r chi.Router) {
		// public reads
		r.Get("/", movieHandler.GetMovies)
		r.Get("/{id}", movieHandler.GetMovie)

		r.Group(func(r chi.Router) {
			if config.Security.MoviesRequireAuth {
				r.Use(middleware.RequireLogin("/sessions/new"))
			}

			r.Get("/new", movieHandler.NewMovie)
			r.Post("/", movieHandler.CreateMovie)
			r.Get("/{id}/edit", movieHandler.EditMovie)
			r.Patch("/{id}", movieHandler.UpdateMovie)
			r.Put("/{id}", movieHandler.UpdateMovie)
			r.Delete("/{id}", movieHandler.DeleteMovie)
		})
	})
}
