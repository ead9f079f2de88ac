package usecase

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/internal/dto/response"
	"movie-review/pkg/database"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context) ([]*entity.Movie, error)
	GetMovieByID(ctx context.Context, id int64) (*entity.Movie, error)
	// GetMovieDetail loads the movie and its reviews with author names in one query.
	GetMovieDetail(ctx context.Context, id int64) (*response.MovieDetail, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*entity.Movie, error)
	UpdateMovie(ctx context.Context, id int64, req *request.MovieRequest) (*entity.Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]*entity.Movie, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id int64) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}
	return movie, nil
}

func (s *movieService) GetMovieDetail(ctx context.Context, id int64) (*response.MovieDetail, error) {
	movie, err := s.GetMovieByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reviews of movie %d: %w", id, err)
	}

	detail := &response.MovieDetail{
		Movie:   movie,
		Reviews: make([]response.ReviewResponse, 0, len(reviews)),
	}
	for _, review := range reviews {
		detail.Reviews = append(detail.Reviews, response.ReviewToResponse(review))
	}

	return detail, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*entity.Movie, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Debug("Create movie validation failed", zap.Any("errors", errs))
		return nil, errs
	}

	movie := &entity.Movie{
		Name:     req.Name,
		Director: req.Director,
		Summary:  req.Summary,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		if database.IsCheckViolation(err) {
			return nil, utils.ValidationErrors{"summary": "is too short (minimum is 10 characters)"}
		}
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created", zap.Int64("movie_id", movie.ID))
	return movie, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id int64, req *request.MovieRequest) (*entity.Movie, error) {
	movie, err := s.GetMovieByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Debug("Update movie validation failed",
			zap.Int64("movie_id", id),
			zap.Any("errors", errs))
		return movie, errs
	}

	movie.Name = req.Name
	movie.Director = req.Director
	movie.Summary = req.Summary

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return nil, fmt.Errorf("movie %d: %w", id, ErrNotFound)
		}
		if database.IsCheckViolation(err) {
			return movie, utils.ValidationErrors{"summary": "is too short (minimum is 10 characters)"}
		}
		return nil, fmt.Errorf("update movie %d: %w", id, err)
	}

	s.log.Info("Movie updated", zap.Int64("movie_id", id))
	return movie, nil
}

// DeleteMovie removes the movie; its reviews go with it.
func (s *movieService) DeleteMovie(ctx context.Context, id int64) error {
	reviews, err := s.repo.Movie.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return fmt.Errorf("movie %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	s.log.Info("Movie deleted",
		zap.Int64("movie_id", id),
		zap.Int64("reviews_removed", reviews))
	return nil
}
