package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/usecase"
	"movie-review/internal/view"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	pages
	service usecase.MovieService
}

func NewMovieHandler(service usecase.MovieService, auth usecase.AuthService, renderer *view.Renderer, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		pages: pages{
			auth:     auth,
			renderer: renderer,
			log:      log.With(zap.String("handler", "movie")),
		},
		service: service,
	}
}

// Home handles GET /
func (h *MovieHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", h.page(r, "Movie Reviews"))
}

// GetMovies handles GET /movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMovies(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "get movies")
		return
	}

	page := h.page(r, "Movies")
	page.Movies = movies
	h.render(w, http.StatusOK, "movies/index", page)
}

// NewMovie handles GET /movies/new
func (h *MovieHandler) NewMovie(w http.ResponseWriter, r *http.Request) {
	page := h.page(r, "New movie")
	page.Form = &request.MovieRequest{}
	h.render(w, http.StatusOK, "movies/new", page)
}

// CreateMovie handles POST /movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := decodeForm(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid form submission")
		return
	}

	_, err := h.service.CreateMovie(r.Context(), &req)
	if errs, ok := utils.AsValidationErrors(err); ok {
		page := h.page(r, "New movie")
		page.Errors = errs
		page.Form = &req
		h.render(w, http.StatusOK, "movies/new", page)
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err, "create movie")
		return
	}

	utils.Redirect(w, r, "/movies")
}

// GetMovie handles GET /movies/{id}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	detail, err := h.service.GetMovieDetail(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err, "get movie")
		return
	}

	page := h.page(r, detail.Movie.Name)
	page.Movie = detail.Movie
	page.Reviews = detail.Reviews
	h.render(w, http.StatusOK, "movies/show", page)
}

// EditMovie handles GET /movies/{id}/edit
func (h *MovieHandler) EditMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err, "get movie")
		return
	}

	page := h.page(r, "Edit "+movie.Name)
	page.Movie = movie
	page.Form = request.MovieRequestFrom(movie)
	h.render(w, http.StatusOK, "movies/edit", page)
}

// UpdateMovie handles PATCH and PUT /movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req request.MovieRequest
	if err := decodeForm(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid form submission")
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), id, &req)
	if errs, ok := utils.AsValidationErrors(err); ok {
		page := h.page(r, "Edit "+movie.Name)
		page.Movie = movie
		page.Errors = errs
		page.Form = &req
		h.render(w, http.StatusOK, "movies/edit", page)
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err, "update movie")
		return
	}

	utils.Redirect(w, r, moviePath(id))
}

// DeleteMovie handles DELETE /movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.DeleteMovie(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err, "delete movie")
		return
	}

	utils.Redirect(w, r, "/movies")
}
