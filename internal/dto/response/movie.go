package response

import (
	"movie-review/internal/data/entity"
)

// MovieDetail is a movie with its reviews and their authors' names.
type MovieDetail struct {
	Movie   *entity.Movie
	Reviews []ReviewResponse
}
