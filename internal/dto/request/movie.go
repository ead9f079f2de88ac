package request

import "movie-review/internal/data/entity"

type MovieRequest struct {
	Name     string `form:"name" validate:"required,notblank"`
	Director string `form:"director" validate:"required,notblank"`
	Summary  string `form:"summary" validate:"required,notblank,min=10"`
}

// MovieRequestFrom prefills the edit form from a stored movie.
func MovieRequestFrom(movie *entity.Movie) *MovieRequest {
	return &MovieRequest{
		Name:     movie.Name,
		Director: movie.Director,
		Summary:  movie.Summary,
	}
}
