// Package memrepo holds in-memory implementations of the repository
// interfaces. They mirror the Postgres constraints (case-insensitive unique
// email, foreign keys, cascading movie deletes) and are used by tests.
package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"movie-review/internal/data/entity"
	"movie-review/internal/data/repository"

	"github.com/google/uuid"
)

// Store is the shared state behind all four repositories.
type Store struct {
	mu       sync.Mutex
	nextID   map[string]int64
	users    map[int64]entity.User
	movies   map[int64]entity.Movie
	reviews  map[int64]entity.Review
	sessions map[uuid.UUID]entity.Session
}

func NewStore() *Store {
	return &Store{
		nextID:   make(map[string]int64),
		users:    make(map[int64]entity.User),
		movies:   make(map[int64]entity.Movie),
		reviews:  make(map[int64]entity.Review),
		sessions: make(map[uuid.UUID]entity.Session),
	}
}

// NewRepository returns a repository set backed by a fresh Store.
func NewRepository() (*repository.Repository, *Store) {
	s := NewStore()
	return &repository.Repository{
		User:    &userRepo{s},
		Session: &sessionRepo{s},
		Movie:   &movieRepo{s},
		Review:  &reviewRepo{s},
	}, s
}

func (s *Store) next(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// MovieCount and ReviewCount let tests assert on persisted rows.
func (s *Store) MovieCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movies)
}

func (s *Store) ReviewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reviews)
}

// DeleteUser removes a user and everything that references it.
func (s *Store) DeleteUser(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	for rid, r := range s.reviews {
		if r.UserID == id {
			delete(s.reviews, rid)
		}
	}
	for tok, sess := range s.sessions {
		if sess.UserID == id {
			delete(s.sessions, tok)
		}
	}
}

// Reviews returns a copy of every stored review ordered by id.
func (s *Store) Reviews() []entity.Review {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Review, 0, len(s.reviews))
	for _, r := range s.reviews {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrEmailTaken
		}
	}

	now := time.Now()
	user.ID = r.s.next("users")
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

type movieRepo struct{ s *Store }

func (r *movieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	movie.ID = r.s.next("movies")
	movie.CreatedAt, movie.UpdatedAt = now, now
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *movieRepo) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *movieRepo) FindAll(_ context.Context) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	movies := make([]*entity.Movie, 0, len(r.s.movies))
	for _, m := range r.s.movies {
		m := m
		movies = append(movies, &m)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].ID < movies[j].ID })
	return movies, nil
}

func (r *movieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.movies[movie.ID]
	if !ok {
		return repository.ErrMovieNotFound
	}
	movie.CreatedAt = existing.CreatedAt
	movie.UpdatedAt = time.Now()
	r.s.movies[movie.ID] = *movie
	return nil
}

func (r *movieRepo) Delete(_ context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[id]; !ok {
		return 0, repository.ErrMovieNotFound
	}
	delete(r.s.movies, id)

	var removed int64
	for rid, rv := range r.s.reviews {
		if rv.MovieID == id {
			delete(r.s.reviews, rid)
			removed++
		}
	}
	return removed, nil
}

type reviewRepo struct{ s *Store }

func (r *reviewRepo) Create(_ context.Context, review *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.movies[review.MovieID]; !ok {
		return repository.ErrReviewReference
	}
	if _, ok := r.s.users[review.UserID]; !ok {
		return repository.ErrReviewReference
	}

	now := time.Now()
	review.ID = r.s.next("reviews")
	review.CreatedAt, review.UpdatedAt = now, now
	r.s.reviews[review.ID] = *review
	return nil
}

func (r *reviewRepo) FindByMovieID(_ context.Context, movieID int64) ([]*entity.ReviewWithUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var reviews []*entity.ReviewWithUser
	for _, rv := range r.s.reviews {
		if rv.MovieID != movieID {
			continue
		}
		reviews = append(reviews, &entity.ReviewWithUser{
			Review:   rv,
			UserName: r.s.users[rv.UserID].Name,
		})
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID < reviews[j].ID })
	return reviews, nil
}

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.sessions[session.Token] = *session
	return nil
}

func (r *sessionRepo) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.sessions[token]
	if !ok || !sess.IsActive(time.Now()) {
		return nil, nil
	}
	return &sess, nil
}

func (r *sessionRepo) Revoke(_ context.Context, token uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sess, ok := r.s.sessions[token]
	if !ok || sess.RevokedAt != nil {
		return nil
	}
	now := time.Now()
	sess.RevokedAt = &now
	r.s.sessions[token] = sess
	return nil
}
