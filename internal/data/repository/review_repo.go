package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"go.uber.org/zap"
)

// ErrReviewReference is returned by Create when movie_id or user_id has no row.
var ErrReviewReference = errors.New("review references a missing movie or user")

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	// FindByMovieID returns the movie's reviews with their authors' names, oldest first.
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.ReviewWithUser, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (point, comment, movie_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		review.Point,
		review.Comment,
		review.MovieID,
		review.UserID,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if database.IsForeignKeyViolation(err) {
		r.log.Warn("Review references missing row",
			zap.String("constraint", database.ViolatedConstraint(err)),
			zap.Int64("movie_id", review.MovieID),
			zap.Int64("user_id", review.UserID),
		)
		return ErrReviewReference
	}
	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.Int64("user_id", review.UserID),
			zap.Int64("movie_id", review.MovieID),
		)
		return fmt.Errorf("create review for movie %d by user %d: %w",
			review.MovieID, review.UserID, err)
	}

	return nil
}

func (r *reviewRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.ReviewWithUser, error) {
	query := `
		SELECT r.id, r.point, r.comment, r.movie_id, r.user_id,
		       r.created_at, r.updated_at, u.name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.movie_id = $1
		ORDER BY r.id
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find reviews by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find reviews by movie ID %d: %w", movieID, err)
	}
	defer rows.Close()

	var reviews []*entity.ReviewWithUser
	for rows.Next() {
		var review entity.ReviewWithUser
		err := rows.Scan(
			&review.ID,
			&review.Point,
			&review.Comment,
			&review.MovieID,
			&review.UserID,
			&review.CreatedAt,
			&review.UpdatedAt,
			&review.UserName,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}
