package adaptor

import (
	"errors"
	"net/http"

	"movie-review/internal/dto/request"
	"movie-review/internal/session"
	"movie-review/internal/usecase"
	"movie-review/internal/view"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

// LoginFailedMessage is shown for every failed login, whatever the cause.
const LoginFailedMessage = "Incorrect email or password, or you are not registered."

// AuthHandler serves the login session routes.
type AuthHandler struct {
	pages
	service  usecase.AuthService
	sessions *session.Manager
}

func NewAuthHandler(service usecase.AuthService, sessions *session.Manager, renderer *view.Renderer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		pages: pages{
			auth:     service,
			renderer: renderer,
			log:      log.With(zap.String("handler", "auth")),
		},
		service:  service,
		sessions: sessions,
	}
}

// NewSession handles GET /sessions/new
func (h *AuthHandler) NewSession(w http.ResponseWriter, r *http.Request) {
	page := h.page(r, "Sign in")
	page.Form = &request.LoginRequest{}
	h.render(w, http.StatusOK, "sessions/new", page)
}

// CreateSession handles POST /sessions
func (h *AuthHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := decodeForm(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid form submission")
		return
	}

	sess := session.FromContext(r.Context())

	user, err := h.service.Login(r.Context(), sess, &req, clientInfo(r))
	if errors.Is(err, usecase.ErrInvalidCredentials) {
		sess.FlashNow(LoginFailedMessage)
		page := h.page(r, "Sign in")
		page.Form = &request.LoginRequest{Email: req.Email}
		h.render(w, http.StatusOK, "sessions/new", page)
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err, "login")
		return
	}

	sess.SetFlash("Welcome back, " + user.Name + "!")
	if err := h.sessions.Save(w, sess); err != nil {
		h.handleServiceError(w, r, err, "save session")
		return
	}

	utils.Redirect(w, r, "/movies")
}

// DestroySession handles DELETE /sessions
func (h *AuthHandler) DestroySession(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())

	if err := h.service.Logout(r.Context(), sess); err != nil {
		// the local session is cleared regardless
		h.log.Warn("Logout could not revoke server session", zap.Error(err))
	}

	sess.SetFlash("Signed out.")
	if err := h.sessions.Save(w, sess); err != nil {
		h.handleServiceError(w, r, err, "save session")
		return
	}

	utils.Redirect(w, r, "/movies")
}
