package wire

import (
	"movie-review/internal/adaptor"
	"movie-review/pkg/middleware"
	"movie-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	limiter := middleware.RateLimitPerIP(
		rate.Limit(config.Security.LoginRateLimit),
		config.Security.LoginRateBurst,
		log,
	)

	r.With(middleware.RedirectIfAuthenticated("/movies")).Get("/sessions/new", authHandler.NewSession)
	r.With(limiter).Post("/sessions", authHandler.CreateSession)
	r.Delete("/sessions", authHandler.DestroySession)

	r.Get("/signin", redirectTo("/sessions/new"))
}
