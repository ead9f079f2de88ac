package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/session"
	"movie-review/internal/usecase"
	"movie-review/internal/view"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	pages
	service usecase.ReviewService
}

func NewReviewHandler(service usecase.ReviewService, auth usecase.AuthService, renderer *view.Renderer, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		pages: pages{
			auth:     auth,
			renderer: renderer,
			log:      log.With(zap.String("handler", "review")),
		},
		service: service,
	}
}

// NewReview handles GET /movies/{movie_id}/reviews/new
func (h *ReviewHandler) NewReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := h.parseID(w, chi.URLParam(r, "movie_id"))
	if !ok {
		return
	}

	movie, err := h.service.PrepareReview(r.Context(), movieID)
	if err != nil {
		h.handleServiceError(w, r, err, "prepare review")
		return
	}

	page := h.page(r, "Review "+movie.Name)
	page.Movie = movie
	page.Form = &request.CreateReviewRequest{}
	h.render(w, http.StatusOK, "reviews/new", page)
}

// CreateReview handles POST /movies/{movie_id}/reviews
// The author is always the logged-in user.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	movieID, ok := h.parseID(w, chi.URLParam(r, "movie_id"))
	if !ok {
		return
	}

	var req request.CreateReviewRequest
	if err := decodeForm(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid form submission")
		return
	}

	sess := session.FromContext(r.Context())

	_, err := h.service.CreateReview(r.Context(), sess.UserID, movieID, &req)
	if errs, ok := utils.AsValidationErrors(err); ok {
		movie, perr := h.service.PrepareReview(r.Context(), movieID)
		if perr != nil {
			h.handleServiceError(w, r, perr, "prepare review")
			return
		}
		page := h.page(r, "Review "+movie.Name)
		page.Movie = movie
		page.Errors = errs
		page.Form = &req
		h.render(w, http.StatusOK, "reviews/new", page)
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err, "create review")
		return
	}

	utils.Redirect(w, r, moviePath(movieID))
}
