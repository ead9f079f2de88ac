package adaptor

import (
	"errors"
	"net/http"
	"strconv"

	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/internal/session"
	"movie-review/internal/usecase"
	"movie-review/internal/view"
	"movie-review/pkg/utils"

	"github.com/go-playground/form/v4"
	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Movie  *MovieHandler
	Review *ReviewHandler
}

func NewHandler(service *usecase.Service, sessions *session.Manager, renderer *view.Renderer, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, sessions, renderer, log),
		User:   NewUserHandler(service.Auth, sessions, renderer, log),
		Movie:  NewMovieHandler(service.Movie, service.Auth, renderer, log),
		Review: NewReviewHandler(service.Review, service.Auth, renderer, log),
	}
}

// formDecoder only fills fields declared on the target struct; every other
// submitted field is dropped.
var formDecoder = form.NewDecoder()

func decodeForm(r *http.Request, dst any) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	return formDecoder.Decode(dst, r.PostForm)
}

func clientInfo(r *http.Request) request.ClientInfo {
	return request.ClientInfo{
		UserAgent: r.UserAgent(),
		IPAddress: r.RemoteAddr,
	}
}

// pages builds view.Page values and renders them; every handler embeds one.
type pages struct {
	auth     usecase.AuthService
	renderer *view.Renderer
	log      *zap.Logger
}

func (p *pages) page(r *http.Request, title string) *view.Page {
	sess := session.FromContext(r.Context())

	user, err := p.auth.CurrentUser(r.Context(), sess)
	if err != nil {
		p.log.Warn("Failed to load current user", zap.Error(err))
	}

	return &view.Page{
		Title:       title,
		CurrentUser: response.UserToResponse(user),
		Flash:       sess.Flash(),
	}
}

func (p *pages) render(w http.ResponseWriter, status int, name string, page *view.Page) {
	if err := p.renderer.Render(w, status, name, page); err != nil {
		p.log.Error("Failed to render page", zap.String("template", name), zap.Error(err))
		utils.ResponseInternalError(w)
	}
}

// handleServiceError maps errors that are not validation failures.
func (p *pages) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		p.log.Info(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w)

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.Redirect(w, r, "/sessions/new")

	default:
		p.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w)
	}
}

// parseID reads a numeric route parameter; a malformed id is treated like a
// missing row.
func (p *pages) parseID(w http.ResponseWriter, raw string) (int64, bool) {
	id, err := utils.ParseID(raw)
	if err != nil {
		utils.ResponseNotFound(w)
		return 0, false
	}
	return id, true
}

// moviePath is the canonical detail URL of a movie.
func moviePath(id int64) string {
	return "/movies/" + strconv.FormatInt(id, 10)
}
