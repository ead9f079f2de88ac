package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-review/internal/data/entity"
	"movie-review/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrMovieNotFound is returned by Update and Delete when no row matched.
var ErrMovieNotFound = errors.New("movie not found")

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	// Delete removes the movie; its reviews go with it (ON DELETE CASCADE).
	// It reports how many reviews were removed alongside.
	Delete(ctx context.Context, id int64) (int64, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (name, director, summary)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		movie.Name,
		movie.Director,
		movie.Summary,
	).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("name", movie.Name),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := `
		SELECT id, name, director, summary, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Name,
		&movie.Director,
		&movie.Summary,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := `
		SELECT id, name, director, summary, created_at, updated_at
		FROM movies
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all movies", zap.Error(err))
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Name,
			&movie.Director,
			&movie.Summary,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Movies found", zap.Int("count", len(movies)))

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET name = $2, director = $3, summary = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		movie.ID,
		movie.Name,
		movie.Director,
		movie.Summary,
	).Scan(&movie.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrMovieNotFound
	}
	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) (int64, error) {
	// one statement: the review count is read from the snapshot taken
	// before the cascade runs
	query := `
		WITH removed AS (
			DELETE FROM movies WHERE id = $1 RETURNING id
		)
		SELECT EXISTS (SELECT 1 FROM removed),
		       (SELECT COUNT(*) FROM reviews WHERE movie_id IN (SELECT id FROM removed))
	`

	var (
		deleted bool
		reviews int64
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&deleted, &reviews)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return 0, fmt.Errorf("failed to delete movie: %w", err)
	}

	if !deleted {
		return 0, ErrMovieNotFound
	}

	r.log.Info("Movie deleted",
		zap.Int64("movie_id", id),
		zap.Int64("reviews_removed", reviews))
	return reviews, nil
}
