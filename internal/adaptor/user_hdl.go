package adaptor

import (
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/session"
	"movie-review/internal/usecase"
	"movie-review/internal/view"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

// UserHandler serves registration.
type UserHandler struct {
	pages
	service  usecase.AuthService
	sessions *session.Manager
}

func NewUserHandler(service usecase.AuthService, sessions *session.Manager, renderer *view.Renderer, log *zap.Logger) *UserHandler {
	return &UserHandler{
		pages: pages{
			auth:     service,
			renderer: renderer,
			log:      log.With(zap.String("handler", "user")),
		},
		service:  service,
		sessions: sessions,
	}
}

// NewUser handles GET /users/new
func (h *UserHandler) NewUser(w http.ResponseWriter, r *http.Request) {
	page := h.page(r, "Sign up")
	page.Form = &request.RegisterRequest{}
	h.render(w, http.StatusOK, "users/new", page)
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := decodeForm(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid form submission")
		return
	}

	sess := session.FromContext(r.Context())

	user, err := h.service.Register(r.Context(), sess, &req, clientInfo(r))
	if errs, ok := utils.AsValidationErrors(err); ok {
		page := h.page(r, "Sign up")
		page.Errors = errs
		page.Form = &request.RegisterRequest{Name: req.Name, Email: req.Email}
		h.render(w, http.StatusOK, "users/new", page)
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err, "register")
		return
	}

	sess.SetFlash("Welcome, " + user.Name + "!")
	if err := h.sessions.Save(w, sess); err != nil {
		h.handleServiceError(w, r, err, "save session")
		return
	}

	utils.Redirect(w, r, "/movies")
}
