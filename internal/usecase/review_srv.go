package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"
	"movie-review/internal/dto/request"
	"movie-review/pkg/utils"

	"go.uber.org/zap"
)

type ReviewService interface {
	// PrepareReview returns the movie a new review would be attached to.
	PrepareReview(ctx context.Context, movieID int64) (*entity.Movie, error)
	// CreateReview stores a review by userID on movieID. Any movie id in req is ignored.
	CreateReview(ctx context.Context, userID, movieID int64, req *request.CreateReviewRequest) (*entity.Review, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) PrepareReview(ctx context.Context, movieID int64) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", movieID, err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %d: %w", movieID, ErrNotFound)
	}
	return movie, nil
}

func (s *reviewService) CreateReview(ctx context.Context, userID, movieID int64, req *request.CreateReviewRequest) (*entity.Review, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}

	if _, err := s.PrepareReview(ctx, movieID); err != nil {
		return nil, err
	}

	errs := utils.ValidateStruct(req)
	if errs == nil {
		errs = make(utils.ValidationErrors)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", userID, err)
	}
	if user == nil {
		errs.Add("user", "must exist")
	}

	if len(errs) > 0 {
		s.log.Debug("Create review validation failed", zap.Any("errors", errs))
		return nil, errs
	}

	point, err := strconv.Atoi(req.Point)
	if err != nil {
		return nil, utils.ValidationErrors{"point": "is not a number"}
	}

	review := &entity.Review{
		Point:   point,
		Comment: req.Comment,
		MovieID: movieID,
		UserID:  userID,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewReference) {
			return nil, utils.ValidationErrors{"movie": "must exist"}
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.log.Info("Review created",
		zap.Int64("review_id", review.ID),
		zap.Int64("movie_id", movieID),
		zap.Int64("user_id", userID))

	return review, nil
}
