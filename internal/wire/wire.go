package wire

import (
	"fmt"
	"net/http"

	"movie-review/internal/adaptor"
	"movie-review/internal/data/repository"
	"movie-review/internal/session"
	"movie-review/internal/usecase"
	"movie-review/internal/view"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the assembled router.
type App struct {
	Router   *chi.Mux
	Sessions *session.Manager
}

// Wiring builds services, handlers and routes on top of repo.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	sessions := session.NewManager(config.Session, config.App.Name)
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, sessions, renderer, logger)

	router := setupRouter(handler, sessions, repo, config, logger)

	return &App{
		Router:   router,
		Sessions: sessions,
	}, nil
}

func setupRouter(
	handler *adaptor.Handler,
	sessions *session.Manager,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// MethodOverride must run before chi picks a route.
	r.Use(chimw.RequestID)
	if config.Security.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.MethodOverride)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(sessions, repo.Session, logger))

		r.Get("/", handler.Movie.Home)

		wireAuth(r, handler.Auth, config, logger)
		wireUser(r, handler.User)
		wireMovie(r, handler.Movie, config)
		wireReview(r, handler.Review)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w)
	})

	return r
}
