package usecase

import (
	"errors"

	"movie-review/internal/data/repository"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
)

type Service struct {
	Auth   AuthService
	Movie  MovieService
	Review ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		Movie:  NewMovieService(repo, log),
		Review: NewReviewService(repo, log),
	}
}
